package analytics

import "github.com/noah-isme/mcat-progress-api/pkg/config"

// ConfigFrom maps service configuration onto calculator thresholds.
func ConfigFrom(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		ScaleMin:                 cfg.ScoreScale.Min,
		ScaleMax:                 cfg.ScoreScale.Max,
		PracticeSessionMilestone: cfg.Analytics.PracticeSessionMilestone,
		TotalScoreMilestone:      cfg.Analytics.TotalScoreMilestone,
		SectionScoreMilestone:    cfg.Analytics.SectionScoreMilestone,
		AlmostMargin:             cfg.Analytics.AlmostMargin,
		OnTrackRatio:             cfg.Analytics.OnTrackRatio,
		DefaultCategoryHours:     cfg.Analytics.DefaultCategoryHours,
		Location:                 cfg.Analytics.Location(),
	}
}
