package analytics

import (
	"fmt"
	"time"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

// Severity is the visual weight of a milestone badge.
type Severity string

const (
	SeverityPrimary   Severity = "primary"
	SeverityWarning   Severity = "warning"
	SeveritySuccess   Severity = "success"
	SeveritySecondary Severity = "secondary"
)

// Milestone is a derived achievement badge.
type Milestone struct {
	Label       string     `json:"label"`
	Date        *time.Time `json:"date,omitempty"`
	Description string     `json:"description"`
	Severity    Severity   `json:"severity"`
}

// Milestones evaluates every badge from scratch. Logs are counted by position, so the session
// badge is dated to the Nth log in the order supplied rather than the Nth chronological one.
func (e *Engine) Milestones(logs []models.PracticeLogEntry, attempts []models.OfficialAttempt) []Milestone {
	out := make([]Milestone, 0, 4+len(models.Sections))

	if n := e.cfg.PracticeSessionMilestone; len(logs) >= n {
		out = append(out, Milestone{
			Label:       fmt.Sprintf("%d Practice Sessions", n),
			Date:        logs[n-1].Date,
			Description: fmt.Sprintf("Logged %d MCAT practice sessions!", n),
			Severity:    SeverityPrimary,
		})
	}

	total := e.cfg.TotalScoreMilestone
	for _, attempt := range attempts {
		if attempt.Total >= total {
			out = append(out, Milestone{
				Label:       fmt.Sprintf("%d+ Total Score", total),
				Date:        attempt.Date,
				Description: fmt.Sprintf("Scored %d or higher on an official MCAT!", total),
				Severity:    SeverityWarning,
			})
			break
		}
	}

	threshold := e.cfg.SectionScoreMilestone
	reached := make(map[models.Section]bool, len(models.Sections))
	for _, attempt := range attempts {
		for _, section := range models.Sections {
			if reached[section] || attempt.Section(section) < threshold {
				continue
			}
			reached[section] = true
			out = append(out, Milestone{
				Label:       fmt.Sprintf("%d+ in %s", threshold, section.Label()),
				Date:        attempt.Date,
				Description: fmt.Sprintf("Scored %d+ in %s on an official MCAT!", threshold, section.Label()),
				Severity:    SeveritySuccess,
			})
		}
	}

	if len(attempts) > 0 {
		out = append(out, Milestone{
			Label:       "First Official MCAT",
			Date:        attempts[0].Date,
			Description: "Logged your first official MCAT attempt!",
			Severity:    SeveritySecondary,
		})
	}
	return out
}
