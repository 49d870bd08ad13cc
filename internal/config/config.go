package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	Timezone        string
	AllowedOrigins  []string
	MapProvider     string
	MapAPIKey       string
	GeocodeCacheTTL time.Duration
	GeocodeTimeout  time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SeedFile        string
	ContentFile     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MAP_PROVIDER", "mapbox")
	v.SetDefault("MAP_API_KEY", "")
	v.SetDefault("GEOCODE_CACHE_TTL", "24h")
	v.SetDefault("GEOCODE_TIMEOUT", "10s")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("CONTENT_FILE", "")
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("PORT"),
		Environment:     strings.ToLower(v.GetString("ENVIRONMENT")),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		Timezone:        v.GetString("TIMEZONE"),
		AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
		MapProvider:     strings.ToLower(v.GetString("MAP_PROVIDER")),
		MapAPIKey:       v.GetString("MAP_API_KEY"),
		GeocodeCacheTTL: v.GetDuration("GEOCODE_CACHE_TTL"),
		GeocodeTimeout:  v.GetDuration("GEOCODE_TIMEOUT"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		SeedFile:        v.GetString("SEED_FILE"),
		ContentFile:     v.GetString("CONTENT_FILE"),
	}

	// Validate required fields
	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	if cfg.MapProvider != "mapbox" && cfg.MapProvider != "google" {
		return nil, fmt.Errorf("MAP_PROVIDER must be either 'mapbox' or 'google', got %q", cfg.MapProvider)
	}
	if cfg.GeocodeTimeout <= 0 {
		return nil, fmt.Errorf("GEOCODE_TIMEOUT must be positive")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Location resolves the timezone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) UsesRedis() bool {
	return c.RedisAddr != ""
}
