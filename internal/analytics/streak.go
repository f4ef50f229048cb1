package analytics

import (
	"sort"
	"time"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

// Streaks holds the consecutive-day activity streaks.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// DayCount is the number of logged sessions on one day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Streaks computes current and longest streaks over the given activity dates.
// The current streak is only alive when the latest activity falls on today.
func (e *Engine) Streaks(dates []time.Time, today time.Time) Streaks {
	return computeStreaks(dates, today, e.cfg.Location)
}

func computeStreaks(dates []time.Time, today time.Time, loc *time.Location) Streaks {
	if len(dates) == 0 {
		return Streaks{}
	}
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		days = append(days, civilDay(d, nil))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	running, longest := 1, 1
	for i := 1; i < len(days); i++ {
		switch daysBetween(days[i-1], days[i]) {
		case 0:
			// same day
		case 1:
			running++
			if running > longest {
				longest = running
			}
		default:
			running = 1
		}
	}

	current := 0
	if days[len(days)-1].Equal(civilDay(today, loc)) {
		current = running
	}
	return Streaks{Current: current, Longest: longest}
}

// PracticeStreaks computes streaks over the days practice was logged. Logs without a date are ignored.
func (e *Engine) PracticeStreaks(logs []models.PracticeLogEntry, today time.Time) Streaks {
	return e.Streaks(logDates(logs), today)
}

// Heatmap counts practice sessions per calendar day, ascending by date.
func (e *Engine) Heatmap(logs []models.PracticeLogEntry) []DayCount {
	counts := make(map[string]int)
	for _, log := range logs {
		if log.Date == nil {
			continue
		}
		counts[civilDay(*log.Date, nil).Format(dayLayout)]++
	}
	out := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DayCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func logDates(logs []models.PracticeLogEntry) []time.Time {
	dates := make([]time.Time, 0, len(logs))
	for _, log := range logs {
		if log.Date != nil {
			dates = append(dates, *log.Date)
		}
	}
	return dates
}
