package config

import (
	"fmt"
	"strings"

	"cityexplorer.app/errors"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Geocode  ProviderConfig `split_words:"true"`
	Forecast ProviderConfig `split_words:"true"`
	Events   ProviderConfig `split_words:"true"`
	Movies   ProviderConfig `split_words:"true"`
	Yelp     ProviderConfig `split_words:"true"`
	Cache    CacheConfig    `split_words:"true"`
	Janitor  JanitorConfig  `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"cityexplorer"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ProviderConfig contains settings for one upstream data provider.
// Keys and base URLs are bound per provider through the prefixed
// environment variables below.
type ProviderConfig struct {
	APIKey  string `envconfig:"API_KEY" required:"true"`
	BaseURL string `envconfig:"BASE_URL"`
}

// CacheConfig contains settings for the hot geocode cache
type CacheConfig struct {
	Type          string `envconfig:"CACHE_TYPE" default:"memory"`
	RedisAddr     string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"CACHE_REDIS_DB" default:"0"`
	TTLMinutes    int    `envconfig:"CACHE_TTL_MINUTES" default:"60"`
}

// JanitorConfig contains settings for the background cache janitor
type JanitorConfig struct {
	Enabled       bool `envconfig:"JANITOR_ENABLED" default:"true"`
	SweepInterval int  `envconfig:"JANITOR_SWEEP_INTERVAL_MINUTES" default:"10"`
}

var providerDefaults = map[string]string{
	"GEOCODE":  "https://maps.googleapis.com/maps/api/geocode/json",
	"FORECAST": "https://api.darksky.net/forecast",
	"EVENTS":   "https://api.meetup.com/find/upcoming_events",
	"MOVIES":   "https://api.themoviedb.org/3/search/movie",
	"YELP":     "https://api.yelp.com/v3/businesses/search",
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config.Server); err != nil {
		return nil, errors.NewConfigurationError("error processing server config", err)
	}
	if err := envconfig.Process("", &config.Database); err != nil {
		return nil, errors.NewConfigurationError("error processing database config", err)
	}
	if err := envconfig.Process("", &config.Cache); err != nil {
		return nil, errors.NewConfigurationError("error processing cache config", err)
	}
	if err := envconfig.Process("", &config.Janitor); err != nil {
		return nil, errors.NewConfigurationError("error processing janitor config", err)
	}

	providers := map[string]*ProviderConfig{
		"GEOCODE":  &config.Geocode,
		"FORECAST": &config.Forecast,
		"EVENTS":   &config.Events,
		"MOVIES":   &config.Movies,
		"YELP":     &config.Yelp,
	}
	for prefix, section := range providers {
		if err := envconfig.Process(prefix, section); err != nil {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("error processing %s provider config", strings.ToLower(prefix)), err)
		}
		if section.BaseURL == "" {
			section.BaseURL = providerDefaults[prefix]
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	sections := map[string]*ProviderConfig{
		"GEOCODE":  &c.Geocode,
		"FORECAST": &c.Forecast,
		"EVENTS":   &c.Events,
		"MOVIES":   &c.Movies,
		"YELP":     &c.Yelp,
	}
	for prefix, section := range sections {
		if err := section.Validate(prefix); err != nil {
			return err
		}
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Janitor.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks one provider section; prefix names the section in messages
func (p *ProviderConfig) Validate(prefix string) error {
	if p.APIKey == "" {
		return errors.NewConfigurationError(fmt.Sprintf("%s_API_KEY is required", prefix), nil)
	}
	if p.BaseURL == "" {
		return errors.NewConfigurationError(fmt.Sprintf("%s_BASE_URL cannot be empty", prefix), nil)
	}
	if !strings.HasPrefix(p.BaseURL, "http://") && !strings.HasPrefix(p.BaseURL, "https://") {
		return errors.NewConfigurationError(
			fmt.Sprintf("%s_BASE_URL must start with http:// or https://", prefix), nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be either 'memory' or 'redis'", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty", nil)
	}
	if c.TTLMinutes < 1 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be at least 1 minute", nil)
	}
	return nil
}

// Validate checks janitor configuration
func (j *JanitorConfig) Validate() error {
	if j.SweepInterval < 1 {
		return errors.NewConfigurationError("JANITOR_SWEEP_INTERVAL_MINUTES must be at least 1 minute", nil)
	}
	if j.SweepInterval > 1440 {
		return errors.NewConfigurationError("JANITOR_SWEEP_INTERVAL_MINUTES cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}
