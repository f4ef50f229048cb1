package analytics

import "github.com/noah-isme/mcat-progress-api/internal/models"

// SectionVolume is the amount of practice done in one section.
type SectionVolume struct {
	Section   models.Section `json:"section"`
	Label     string         `json:"label"`
	Questions int            `json:"questions"`
	Sessions  int            `json:"sessions"`
}

// PracticeSummary totals practice volume across sections.
type PracticeSummary struct {
	Sections       []SectionVolume `json:"sections"`
	TotalQuestions int             `json:"total_questions"`
	TotalSessions  int             `json:"total_sessions"`
	TopSection     models.Section  `json:"top_section,omitempty"`
}

// PracticeSummary counts questions and sessions per section. The top section is the first
// section, in canonical order, with the most questions; it is empty when nothing was practiced.
func (e *Engine) PracticeSummary(logs []models.PracticeLogEntry) PracticeSummary {
	questions := make(map[models.Section]int, len(models.Sections))
	sessions := make(map[models.Section]int, len(models.Sections))
	for _, log := range logs {
		if !log.Section.Valid() || log.TotalQuestions < 0 {
			continue
		}
		questions[log.Section] += log.TotalQuestions
		sessions[log.Section]++
	}

	out := PracticeSummary{Sections: make([]SectionVolume, 0, len(models.Sections))}
	top := 0
	for _, section := range models.Sections {
		out.Sections = append(out.Sections, SectionVolume{
			Section:   section,
			Label:     section.Label(),
			Questions: questions[section],
			Sessions:  sessions[section],
		})
		out.TotalQuestions += questions[section]
		out.TotalSessions += sessions[section]
		if questions[section] > top {
			top = questions[section]
			out.TopSection = section
		}
	}
	return out
}
