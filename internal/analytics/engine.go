// Package analytics derives dashboard metrics from a user's practice and test history.
// Every calculator is a pure function of its inputs; nothing is cached or persisted here.
package analytics

import "time"

// Config tunes thresholds used by the calculators. Zero values fall back to defaults.
type Config struct {
	ScaleMin                 int
	ScaleMax                 int
	PracticeSessionMilestone int
	TotalScoreMilestone      int
	SectionScoreMilestone    int
	AlmostMargin             int
	OnTrackRatio             float64
	DefaultCategoryHours     float64
	Location                 *time.Location
}

// DefaultConfig returns the standard MCAT rubric and badge thresholds.
func DefaultConfig() Config {
	return Config{
		ScaleMin:                 118,
		ScaleMax:                 132,
		PracticeSessionMilestone: 10,
		TotalScoreMilestone:      520,
		SectionScoreMilestone:    130,
		AlmostMargin:             2,
		OnTrackRatio:             0.8,
		DefaultCategoryHours:     100,
		Location:                 time.UTC,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ScaleMin <= 0 || c.ScaleMax <= c.ScaleMin {
		c.ScaleMin, c.ScaleMax = def.ScaleMin, def.ScaleMax
	}
	if c.PracticeSessionMilestone <= 0 {
		c.PracticeSessionMilestone = def.PracticeSessionMilestone
	}
	if c.TotalScoreMilestone <= 0 {
		c.TotalScoreMilestone = def.TotalScoreMilestone
	}
	if c.SectionScoreMilestone <= 0 {
		c.SectionScoreMilestone = def.SectionScoreMilestone
	}
	if c.AlmostMargin <= 0 {
		c.AlmostMargin = def.AlmostMargin
	}
	if c.OnTrackRatio <= 0 || c.OnTrackRatio > 1 {
		c.OnTrackRatio = def.OnTrackRatio
	}
	if c.DefaultCategoryHours <= 0 {
		c.DefaultCategoryHours = def.DefaultCategoryHours
	}
	if c.Location == nil {
		c.Location = def.Location
	}
	return c
}

// Engine bundles the calculators with one configuration.
type Engine struct {
	cfg    Config
	scaler Scaler
}

// New constructs an Engine. Invalid thresholds are replaced by defaults.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{cfg: cfg, scaler: NewScaler(cfg.ScaleMin, cfg.ScaleMax)}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Scaler returns the score scaler used by the engine.
func (e *Engine) Scaler() Scaler {
	return e.scaler
}
