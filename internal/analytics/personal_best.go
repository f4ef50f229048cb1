package analytics

import (
	"time"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

// Record sources for personal bests.
const (
	SourcePractice = "Practice"
	SourceOfficial = "Official"
)

// Best is the highest score found for a section or for the total.
type Best struct {
	Score  int        `json:"score"`
	Source string     `json:"source"`
	Date   *time.Time `json:"date,omitempty"`
}

// PersonalBests holds per-section bests and the best official total. Missing entries mean no data.
type PersonalBests struct {
	Sections map[models.Section]*Best `json:"sections"`
	Total    *Best                    `json:"total,omitempty"`
}

// PersonalBests scans practice logs then official attempts for each section's highest score.
// The first record reaching a maximum wins ties.
func (e *Engine) PersonalBests(logs []models.PracticeLogEntry, attempts []models.OfficialAttempt) PersonalBests {
	out := PersonalBests{Sections: make(map[models.Section]*Best, len(models.Sections))}
	for _, section := range models.Sections {
		var best *Best
		for _, log := range logs {
			if log.Section != section || !log.HasScore() {
				continue
			}
			if best == nil || log.ScaledScore > best.Score {
				best = &Best{Score: log.ScaledScore, Source: SourcePractice, Date: log.Date}
			}
		}
		for _, attempt := range attempts {
			score := attempt.Section(section)
			if score <= 0 {
				continue
			}
			if best == nil || score > best.Score {
				best = &Best{Score: score, Source: SourceOfficial, Date: attempt.Date}
			}
		}
		if best != nil {
			out.Sections[section] = best
		}
	}

	for _, attempt := range attempts {
		if attempt.Total <= 0 {
			continue
		}
		if out.Total == nil || attempt.Total > out.Total.Score {
			out.Total = &Best{Score: attempt.Total, Source: SourceOfficial, Date: attempt.Date}
		}
	}
	return out
}
