package analytics

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

// HoursStatus classifies logged hours against a category target.
type HoursStatus string

const (
	HoursExceeding HoursStatus = "exceeding"
	HoursOnTrack   HoursStatus = "on track"
	HoursLacking   HoursStatus = "lacking"
)

// Recommendation is the guidance for one extracurricular category.
type Recommendation struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	Total    float64         `json:"total"`
	Target   float64         `json:"target"`
	Status   HoursStatus     `json:"status"`
	Message  string          `json:"message"`
}

// Recommendations sums hours per category from tracked entries and profile-setup entries,
// then compares each total with the category target.
func (e *Engine) Recommendations(tracked []models.Extracurricular, setup []models.SetupActivity, targets models.CategoryTargets) []Recommendation {
	totals := make(map[models.Category]float64, len(models.Categories))
	for _, entry := range tracked {
		if entry.Hours > 0 {
			totals[entry.Category] += entry.Hours
		}
	}
	for _, entry := range setup {
		if entry.Hours > 0 {
			totals[entry.Category] += entry.Hours
		}
	}

	out := make([]Recommendation, 0, len(models.Categories))
	for _, category := range models.Categories {
		target, ok := targets[category]
		if !ok || target < 0 {
			target = e.cfg.DefaultCategoryHours
		}
		total := totals[category]
		rec := Recommendation{
			Category: category,
			Label:    category.Label(),
			Total:    total,
			Target:   target,
			Status:   e.hoursStatus(total, target),
		}
		rec.Message = hoursMessage(rec)
		out = append(out, rec)
	}
	return out
}

func (e *Engine) hoursStatus(total, target float64) HoursStatus {
	switch {
	case total >= target:
		return HoursExceeding
	case total >= e.cfg.OnTrackRatio*target:
		return HoursOnTrack
	default:
		return HoursLacking
	}
}

func hoursMessage(rec Recommendation) string {
	total, target := formatHours(rec.Total), formatHours(rec.Target)
	switch rec.Status {
	case HoursExceeding:
		return fmt.Sprintf("Great job! You have %s hours in %s (target: %s).", total, rec.Category, target)
	case HoursOnTrack:
		return fmt.Sprintf("You're on track in %s: %s hours (target: %s).", rec.Category, total, target)
	default:
		return fmt.Sprintf("You have logged %s hours in %s. Aim for at least %s hours to strengthen your application.", total, rec.Category, target)
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
