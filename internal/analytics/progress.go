package analytics

import (
	"sort"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

// ProgressStatus classifies the latest practice score against the target.
type ProgressStatus string

const (
	StatusNoData    ProgressStatus = "No Data"
	StatusOnTrack   ProgressStatus = "On Track"
	StatusAlmost    ProgressStatus = "Almost"
	StatusNeedsWork ProgressStatus = "Needs Work"
)

// SectionProgress compares one section's latest scores to its target.
type SectionProgress struct {
	Section          models.Section `json:"section"`
	Label            string         `json:"label"`
	Target           int            `json:"target"`
	LatestPractice   *int           `json:"latest_practice"`
	LatestOfficial   *int           `json:"latest_official"`
	Status           ProgressStatus `json:"status"`
	Progress         int            `json:"progress"`
	OfficialProgress int            `json:"official_progress"`
}

// Progress is the per-section comparison against the user's target.
type Progress struct {
	HasData  bool              `json:"has_data"`
	Target   models.Target     `json:"target"`
	Sections []SectionProgress `json:"sections"`
}

// Progress compares the latest practice and official score per section to the target.
// Practice logs are ordered by date before the latest is picked; logs without a score are skipped.
func (e *Engine) Progress(target models.Target, logs []models.PracticeLogEntry, attempts []models.OfficialAttempt) Progress {
	target = target.Recompute()
	sortedLogs := make([]models.PracticeLogEntry, len(logs))
	copy(sortedLogs, logs)
	sort.SliceStable(sortedLogs, func(i, j int) bool { return dateBefore(sortedLogs[i].Date, sortedLogs[j].Date) })

	sortedAttempts := make([]models.OfficialAttempt, len(attempts))
	copy(sortedAttempts, attempts)
	sort.SliceStable(sortedAttempts, func(i, j int) bool { return dateBefore(sortedAttempts[j].Date, sortedAttempts[i].Date) })

	out := Progress{Target: target, Sections: make([]SectionProgress, 0, len(models.Sections))}
	for _, section := range models.Sections {
		row := SectionProgress{Section: section, Label: section.Label(), Target: target.Section(section)}
		for i := len(sortedLogs) - 1; i >= 0; i-- {
			log := sortedLogs[i]
			if log.Section == section && log.HasScore() {
				score := log.ScaledScore
				row.LatestPractice = &score
				break
			}
		}
		for _, attempt := range sortedAttempts {
			if score := attempt.Section(section); score > 0 {
				row.LatestOfficial = &score
				break
			}
		}
		row.Status = e.classify(row.LatestPractice, row.Target)
		row.Progress = progressPercent(row.LatestPractice, row.Target)
		row.OfficialProgress = progressPercent(row.LatestOfficial, row.Target)
		if row.LatestPractice != nil || row.LatestOfficial != nil {
			out.HasData = true
		}
		out.Sections = append(out.Sections, row)
	}
	return out
}

func (e *Engine) classify(latest *int, target int) ProgressStatus {
	switch {
	case latest == nil || *latest <= 0:
		return StatusNoData
	case *latest >= target:
		return StatusOnTrack
	case *latest >= target-e.cfg.AlmostMargin:
		return StatusAlmost
	default:
		return StatusNeedsWork
	}
}

func progressPercent(latest *int, target int) int {
	if latest == nil || *latest <= 0 || target <= 0 {
		return 0
	}
	return clamp(roundHalfUp(float64(*latest)/float64(target)*100), 0, 100)
}
