package analytics

import (
	"time"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func intPtr(v int) *int {
	return &v
}

func practice(date string, section models.Section, scaled int) models.PracticeLogEntry {
	entry := models.PracticeLogEntry{Section: section, ScaledScore: scaled, Platform: models.PlatformAAMC, TotalQuestions: 59}
	if date != "" {
		entry.Date = dayPtr(date)
	}
	return entry
}

func attempt(date string, chem, cars, bio, psych *int) models.OfficialAttempt {
	a := models.OfficialAttempt{AttemptScores: models.AttemptScores{ChemPhys: chem, CARS: cars, BioBiochem: bio, PsychSoc: psych}}
	if date != "" {
		a.Date = dayPtr(date)
	}
	a.AttemptScores = a.AttemptScores.Recompute()
	return a
}

func newTestEngine() *Engine {
	return New(DefaultConfig())
}
