package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	CORS       CORSConfig
	Log        LogConfig
	Dashboard  DashboardConfig
	ScoreScale ScoreScaleConfig
	Analytics  AnalyticsConfig
	Exports    ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig describes how identity tokens issued by the identity provider are verified.
type AuthConfig struct {
	TokenSecret string
	Issuer      string
	Audience    []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs dashboard cache behaviour.
type DashboardConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ScoreScaleConfig is the scaled-score rubric used to convert raw practice results.
type ScoreScaleConfig struct {
	Min int
	Max int
}

// AnalyticsConfig holds the thresholds used by the derived analytics.
type AnalyticsConfig struct {
	Timezone                 string
	PracticeSessionMilestone int
	TotalScoreMilestone      int
	SectionScoreMilestone    int
	AlmostMargin             int
	OnTrackRatio             float64
	DefaultCategoryHours     float64
}

// ExportsConfig toggles practice-log exports.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		TokenSecret: v.GetString("AUTH_TOKEN_SECRET"),
		Issuer:      v.GetString("AUTH_TOKEN_ISSUER"),
		Audience:    splitAndTrim(v.GetString("AUTH_TOKEN_AUDIENCE")),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled: v.GetBool("ENABLE_DASHBOARD_CACHE"),
		CacheTTL:     parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.ScoreScale = ScoreScaleConfig{
		Min: v.GetInt("SCORE_SCALE_MIN"),
		Max: v.GetInt("SCORE_SCALE_MAX"),
	}
	if cfg.ScoreScale.Max <= cfg.ScoreScale.Min {
		cfg.ScoreScale = ScoreScaleConfig{Min: 118, Max: 132}
	}

	cfg.Analytics = AnalyticsConfig{
		Timezone:                 v.GetString("ANALYTICS_TIMEZONE"),
		PracticeSessionMilestone: v.GetInt("MILESTONE_PRACTICE_SESSIONS"),
		TotalScoreMilestone:      v.GetInt("MILESTONE_TOTAL_SCORE"),
		SectionScoreMilestone:    v.GetInt("MILESTONE_SECTION_SCORE"),
		AlmostMargin:             v.GetInt("PROGRESS_ALMOST_MARGIN"),
		OnTrackRatio:             v.GetFloat64("ECS_ON_TRACK_RATIO"),
		DefaultCategoryHours:     v.GetFloat64("ECS_DEFAULT_TARGET_HOURS"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5500)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mcat_progress")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_TOKEN_SECRET", "dev_secret")
	v.SetDefault("AUTH_TOKEN_ISSUER", "")
	v.SetDefault("AUTH_TOKEN_AUDIENCE", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_DASHBOARD_CACHE", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("SCORE_SCALE_MIN", 118)
	v.SetDefault("SCORE_SCALE_MAX", 132)

	v.SetDefault("ANALYTICS_TIMEZONE", "UTC")
	v.SetDefault("MILESTONE_PRACTICE_SESSIONS", 10)
	v.SetDefault("MILESTONE_TOTAL_SCORE", 520)
	v.SetDefault("MILESTONE_SECTION_SCORE", 130)
	v.SetDefault("PROGRESS_ALMOST_MARGIN", 2)
	v.SetDefault("ECS_ON_TRACK_RATIO", 0.8)
	v.SetDefault("ECS_DEFAULT_TARGET_HOURS", 100)

	v.SetDefault("ENABLE_EXPORTS", true)
}

// Location resolves the analytics timezone, falling back to UTC.
func (c AnalyticsConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func isMissingFile(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
