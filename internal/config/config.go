package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                  string        `mapstructure:"ENV"`
	Port                 string        `mapstructure:"PORT"`
	DatabaseURL          string        `mapstructure:"DATABASE_URL"`
	RedisURL             string        `mapstructure:"REDIS_URL"`
	AdminKey             string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed          string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout       time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	RecencyWindow        time.Duration `mapstructure:"RECENCY_WINDOW"`
	HeatmapWindow        time.Duration `mapstructure:"HEATMAP_WINDOW"`
	DuplicateWindow      time.Duration `mapstructure:"DUPLICATE_WINDOW"`
	SubmissionsPerMinute int           `mapstructure:"SUBMISSIONS_PER_MINUTE"`
	SubmissionsPerHour   int           `mapstructure:"SUBMISSIONS_PER_HOUR"`
	GeocodeEnabled       bool          `mapstructure:"GEOCODE_ENABLED"`
	NominatimURL         string        `mapstructure:"NOMINATIM_URL"`
	CampusName           string        `mapstructure:"CAMPUS_NAME"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	// Callers historically disagreed between 3-day and 7-day recency; the
	// window is configuration, 7 days by default.
	v.SetDefault("RECENCY_WINDOW", "168h")
	v.SetDefault("HEATMAP_WINDOW", "72h")
	v.SetDefault("DUPLICATE_WINDOW", "2h")
	v.SetDefault("SUBMISSIONS_PER_MINUTE", 10)
	v.SetDefault("SUBMISSIONS_PER_HOUR", 100)
	v.SetDefault("GEOCODE_ENABLED", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
