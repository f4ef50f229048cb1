package analytics

import (
	"fmt"
	"time"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

// Calculator names reported in dashboard errors.
const (
	CalcProgress        = "progress"
	CalcInsights        = "section_insights"
	CalcStreaks         = "streaks"
	CalcHeatmap         = "heatmap"
	CalcPersonalBests   = "personal_bests"
	CalcMilestones      = "milestones"
	CalcRecommendations = "recommendations"
	CalcSummary         = "practice_summary"
	CalcTrends          = "trends"
)

// Input is the record set a dashboard is computed from.
type Input struct {
	Target           models.Target
	CategoryTargets  models.CategoryTargets
	PracticeLogs     []models.PracticeLogEntry
	Attempts         []models.OfficialAttempt
	Extracurriculars []models.Extracurricular
	SetupActivities  []models.SetupActivity
	Filter           models.PracticeLogFilter
}

// InputFromProfile builds an Input from a fully loaded profile.
func InputFromProfile(p *models.Profile, filter models.PracticeLogFilter) Input {
	if p == nil {
		return Input{Filter: filter}
	}
	return Input{
		Target:           p.Target,
		CategoryTargets:  p.CategoryTargets,
		PracticeLogs:     p.PracticeLogs,
		Attempts:         p.Attempts,
		Extracurriculars: p.Extracurriculars,
		SetupActivities:  p.SetupActivities,
		Filter:           filter,
	}
}

// CalculatorError records a calculator that failed while the rest of the dashboard rendered.
type CalculatorError struct {
	Calculator string `json:"calculator"`
	Message    string `json:"message"`
}

// Dashboard is the composed result of every calculator.
type Dashboard struct {
	Today           string            `json:"today"`
	Progress        *Progress         `json:"progress,omitempty"`
	Insights        *SectionInsights  `json:"section_insights,omitempty"`
	Streaks         *Streaks          `json:"streaks,omitempty"`
	Heatmap         []DayCount        `json:"heatmap"`
	PersonalBests   *PersonalBests    `json:"personal_bests,omitempty"`
	Milestones      []Milestone       `json:"milestones"`
	Recommendations []Recommendation  `json:"recommendations"`
	Summary         *PracticeSummary  `json:"practice_summary,omitempty"`
	Trends          []TrendSeries     `json:"trends"`
	Errors          []CalculatorError `json:"errors,omitempty"`
}

// Dashboard runs every calculator over the input. Each calculator is isolated: a panic in one
// is recorded in Errors and leaves its section empty while the others still render.
// The date filter narrows practice logs only.
func (e *Engine) Dashboard(in Input, now time.Time) *Dashboard {
	logs := e.FilterLogs(in.PracticeLogs, in.Filter)
	today := civilDay(now, e.cfg.Location)
	out := &Dashboard{Today: today.Format(dayLayout)}

	e.guard(out, CalcProgress, func() {
		p := e.Progress(in.Target, logs, in.Attempts)
		out.Progress = &p
	})
	e.guard(out, CalcInsights, func() {
		s := e.SectionInsights(logs)
		out.Insights = &s
	})
	e.guard(out, CalcStreaks, func() {
		s := e.PracticeStreaks(logs, now)
		out.Streaks = &s
	})
	e.guard(out, CalcHeatmap, func() {
		out.Heatmap = e.Heatmap(logs)
	})
	e.guard(out, CalcPersonalBests, func() {
		b := e.PersonalBests(logs, in.Attempts)
		out.PersonalBests = &b
	})
	e.guard(out, CalcMilestones, func() {
		out.Milestones = e.Milestones(logs, in.Attempts)
	})
	e.guard(out, CalcRecommendations, func() {
		out.Recommendations = e.Recommendations(in.Extracurriculars, in.SetupActivities, in.CategoryTargets)
	})
	e.guard(out, CalcSummary, func() {
		s := e.PracticeSummary(logs)
		out.Summary = &s
	})
	e.guard(out, CalcTrends, func() {
		out.Trends = e.Trends(logs)
	})
	return out
}

func (e *Engine) guard(out *Dashboard, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			out.Errors = append(out.Errors, CalculatorError{Calculator: name, Message: fmt.Sprint(r)})
		}
	}()
	fn()
}
