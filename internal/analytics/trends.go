package analytics

import (
	"sort"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

// TrendPoint is one scored practice session on a trend line.
type TrendPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// TrendSeries is the chronological score line for a section on one platform.
type TrendSeries struct {
	Section  models.Section `json:"section"`
	Platform string         `json:"platform"`
	Points   []TrendPoint   `json:"points"`
}

// Trends groups scored, dated practice logs by section and platform. Series are returned in
// canonical section order then known platform order; unknown platforms are folded into Other.
func (e *Engine) Trends(logs []models.PracticeLogEntry) []TrendSeries {
	type key struct {
		section  models.Section
		platform string
	}
	grouped := make(map[key][]models.PracticeLogEntry)
	for _, log := range logs {
		if !log.Section.Valid() || !log.HasScore() || log.Date == nil {
			continue
		}
		k := key{section: log.Section, platform: normalizePlatform(log.Platform)}
		grouped[k] = append(grouped[k], log)
	}

	out := make([]TrendSeries, 0, len(grouped))
	for _, section := range models.Sections {
		for _, platform := range models.Platforms {
			entries := grouped[key{section: section, platform: platform}]
			if len(entries) == 0 {
				continue
			}
			sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(*entries[j].Date) })
			points := make([]TrendPoint, 0, len(entries))
			for _, entry := range entries {
				points = append(points, TrendPoint{
					Date:  civilDay(*entry.Date, nil).Format(dayLayout),
					Score: entry.ScaledScore,
				})
			}
			out = append(out, TrendSeries{Section: section, Platform: platform, Points: points})
		}
	}
	return out
}

func normalizePlatform(p string) string {
	for _, known := range models.Platforms {
		if p == known {
			return p
		}
	}
	return models.PlatformOther
}
