package analytics

import "github.com/noah-isme/mcat-progress-api/internal/models"

// FilterLogs keeps practice logs whose calendar day falls inside the inclusive range.
// Bounds are calendar dates taken as-is. With an active filter, logs without a date are dropped.
// An inactive filter returns logs unchanged.
func (e *Engine) FilterLogs(logs []models.PracticeLogEntry, filter models.PracticeLogFilter) []models.PracticeLogEntry {
	if !filter.Active() {
		return logs
	}
	out := make([]models.PracticeLogEntry, 0, len(logs))
	for _, log := range logs {
		if log.Date == nil {
			continue
		}
		day := civilDay(*log.Date, nil)
		if filter.From != nil && day.Before(civilDay(*filter.From, nil)) {
			continue
		}
		if filter.To != nil && day.After(civilDay(*filter.To, nil)) {
			continue
		}
		out = append(out, log)
	}
	return out
}
