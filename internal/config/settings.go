package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ROTHTRAD_SERVER_ADDR
const EnvPrefix = "ROTHTRAD"

// DefaultPlanYear is used when neither the scenario nor the settings name one
const DefaultPlanYear = 2024

// Settings are the application-level knobs shared by the CLI and the server
type Settings struct {
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
	PlanYear  int            `mapstructure:"plan_year"`
	Workers   int            `mapstructure:"workers"`
	TaxTables string         `mapstructure:"tax_tables"`
	Server    ServerSettings `mapstructure:"server"`
}

// ServerSettings configure the HTTP boundary
type ServerSettings struct {
	Addr      string        `mapstructure:"addr"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second
	Burst     int           `mapstructure:"burst"`
	Timeout   time.Duration `mapstructure:"timeout"` // per comparison request
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("plan_year", DefaultPlanYear)
	v.SetDefault("workers", 8)
	v.SetDefault("tax_tables", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cache_ttl", "10m")
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.timeout", "30s")
	return v
}

// LoadSettings reads settings from an optional YAML file, then applies
// ROTHTRAD_* environment overrides on top of the defaults.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects settings the engine cannot run with
func (s *Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.PlanYear < 2000 || s.PlanYear > 2100 {
		return fmt.Errorf("plan_year %d out of range", s.PlanYear)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", s.LogFormat)
	}
	if s.Server.RateLimit <= 0 || s.Server.Burst < 1 {
		return fmt.Errorf("server rate_limit and burst must be positive")
	}
	if s.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive")
	}
	// go-cache never expires entries with a zero TTL
	if s.Server.CacheTTL <= 0 {
		return fmt.Errorf("server cache_ttl must be positive, got %s", s.Server.CacheTTL)
	}
	return nil
}
