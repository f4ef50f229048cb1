package analytics

import "github.com/noah-isme/mcat-progress-api/internal/models"

// SectionAverage is the mean scaled practice score of one section.
type SectionAverage struct {
	Section models.Section `json:"section"`
	Label   string         `json:"label"`
	Average *float64       `json:"average"`
	Count   int            `json:"count"`
}

// SectionInsights reports per-section averages and the weakest and strongest sections.
type SectionInsights struct {
	HasData   bool             `json:"has_data"`
	Sections  []SectionAverage `json:"sections"`
	Weakest   models.Section   `json:"weakest,omitempty"`
	Strongest models.Section   `json:"strongest,omitempty"`
}

// SectionInsights averages non-zero scaled scores per section. Sections without data are
// excluded from the weakest and strongest comparison.
func (e *Engine) SectionInsights(logs []models.PracticeLogEntry) SectionInsights {
	sums := make(map[models.Section]int, len(models.Sections))
	counts := make(map[models.Section]int, len(models.Sections))
	for _, log := range logs {
		if !log.Section.Valid() || !log.HasScore() {
			continue
		}
		sums[log.Section] += log.ScaledScore
		counts[log.Section]++
	}

	out := SectionInsights{Sections: make([]SectionAverage, 0, len(models.Sections))}
	var weakest, strongest *SectionAverage
	for _, section := range models.Sections {
		row := SectionAverage{Section: section, Label: section.Label(), Count: counts[section]}
		if n := counts[section]; n > 0 {
			avg := float64(sums[section]) / float64(n)
			row.Average = &avg
		}
		out.Sections = append(out.Sections, row)
	}
	for i := range out.Sections {
		row := &out.Sections[i]
		if row.Average == nil {
			continue
		}
		if weakest == nil || *row.Average < *weakest.Average {
			weakest = row
		}
		if strongest == nil || *row.Average > *strongest.Average {
			strongest = row
		}
	}
	if weakest != nil {
		out.HasData = true
		out.Weakest = weakest.Section
		out.Strongest = strongest.Section
	}
	return out
}
