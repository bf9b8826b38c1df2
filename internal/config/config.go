// Package config содержит логику чтения конфигурации консоли кондитерской.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultRunAddress    = "localhost:8080"
	defaultTimezone      = "America/La_Paz"
	defaultPhoneRegion   = "BO"
	defaultAPITimeout    = 10 * time.Second
	defaultPurgeInterval = time.Hour
	defaultSessionIdle   = 24 * time.Hour
)

// Config содержит параметры конфигурации консоли.
type Config struct {
	RunAddress    string        `env:"RUN_ADDRESS"`
	DatabaseURI   string        `env:"DATABASE_URI"`
	APIBaseURL    string        `env:"API_BASE_URL"`
	SessionSecret string        `env:"SESSION_SECRET"`
	Timezone      string        `env:"TIMEZONE"`
	PhoneRegion   string        `env:"PHONE_REGION"`
	APITimeout    time.Duration `env:"API_TIMEOUT"`
	PurgeInterval time.Duration `env:"SESSION_PURGE_INTERVAL"`
	SessionIdle   time.Duration `env:"SESSION_IDLE"`

	location *time.Location
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	envCfg := Config{}
	if err := env.Parse(&envCfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for session storage")
	flag.StringVar(&cfg.APIBaseURL, "u", "", "bakery API base URL")
	flag.StringVar(&cfg.SessionSecret, "s", "", "secret for session cookie signing")
	flag.StringVar(&cfg.Timezone, "z", defaultTimezone, "branch timezone")
	flag.StringVar(&cfg.PhoneRegion, "p", defaultPhoneRegion, "default phone region")
	flag.DurationVar(&cfg.APITimeout, "t", defaultAPITimeout, "bakery API request timeout")
	flag.DurationVar(&cfg.PurgeInterval, "purge-interval", defaultPurgeInterval, "idle session purge interval")
	flag.DurationVar(&cfg.SessionIdle, "session-idle", defaultSessionIdle, "idle time after which a session is purged")

	flag.Parse()

	if envCfg.RunAddress != "" {
		cfg.RunAddress = envCfg.RunAddress
	}
	if envCfg.DatabaseURI != "" {
		cfg.DatabaseURI = envCfg.DatabaseURI
	}
	if envCfg.APIBaseURL != "" {
		cfg.APIBaseURL = envCfg.APIBaseURL
	}
	if envCfg.SessionSecret != "" {
		cfg.SessionSecret = envCfg.SessionSecret
	}
	if envCfg.Timezone != "" {
		cfg.Timezone = envCfg.Timezone
	}
	if envCfg.PhoneRegion != "" {
		cfg.PhoneRegion = envCfg.PhoneRegion
	}
	if envCfg.APITimeout > 0 {
		cfg.APITimeout = envCfg.APITimeout
	}
	if envCfg.PurgeInterval > 0 {
		cfg.PurgeInterval = envCfg.PurgeInterval
	}
	if envCfg.SessionIdle > 0 {
		cfg.SessionIdle = envCfg.SessionIdle
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.PhoneRegion == "" {
		cfg.PhoneRegion = defaultPhoneRegion
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return cfg, nil
}

// Location возвращает часовой пояс филиала.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
