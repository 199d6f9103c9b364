package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains runtime configuration for the govproxy service.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Upstreams UpstreamsConfig `yaml:"upstreams" mapstructure:"upstreams"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig captures HTTP server settings.
type ServerConfig struct {
	Port                int `yaml:"port" mapstructure:"port"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int `yaml:"idle_timeout_seconds" mapstructure:"idle_timeout_seconds"`
}

// UpstreamsConfig captures the fixed data sources the dashboard bootstrap
// aggregates, plus the Koios REST base used by the passthrough endpoints.
type UpstreamsConfig struct {
	SPOCSVURL      string `yaml:"spo_csv_url" mapstructure:"spo_csv_url"`
	DRepJSONURL    string `yaml:"drep_json_url" mapstructure:"drep_json_url"`
	KoiosBaseURL   string `yaml:"koios_base_url" mapstructure:"koios_base_url"`
	PageLimit      int    `yaml:"page_limit" mapstructure:"page_limit"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// GeminiConfig captures the generative AI relay settings. APIKey is the
// server-held secret; it is never accepted from request input.
type GeminiConfig struct {
	APIKey         string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	Model          string `yaml:"model" mapstructure:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// CORSConfig captures cross-origin settings for the browser-facing routes.
type CORSConfig struct {
	AllowedOrigins  []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	PreflightStatus int      `yaml:"preflight_status" mapstructure:"preflight_status"`
}

// LoggingConfig captures logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
}

// ReadTimeout returns the configured read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the configured write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the configured idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

// Timeout returns the upstream fetch timeout as a duration.
func (u UpstreamsConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// Timeout returns the Gemini forward timeout as a duration.
func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// Load reads configuration from the provided path and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set all defaults
	v.SetDefault("server.port", 8084)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.idle_timeout_seconds", 60)

	v.SetDefault("upstreams.spo_csv_url", "https://gist.githubusercontent.com/Thomas-nada/7b742a3ca9e42281ae831b3da689c0b5/raw/fcf93ff7fae331a329f2ed69267bdf44e29f021e/governance-report.csv")
	v.SetDefault("upstreams.drep_json_url", "https://gist.githubusercontent.com/Thomas-nada/28f6ba461017efcb5ab942964776923e/raw/509ad05637b91d228b2bf0b6e26cd38d9641dd4d/drep_directory.json")
	v.SetDefault("upstreams.koios_base_url", "https://api.koios.rest/api/v1")
	v.SetDefault("upstreams.page_limit", 1000)
	v.SetDefault("upstreams.timeout_seconds", 30)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout_seconds", 60)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.preflight_status", 200)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/govproxy")
	}

	// Environment variables override
	v.SetEnvPrefix("GOVPROXY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found; use defaults
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The bare GEMINI_API_KEY name is honored for parity with the
	// original deployment environment.
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable. A missing Gemini API
// key is deliberately not a validation error: the relay reports it as a
// structured 500 at request time so the aggregation endpoints keep working.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Upstreams.SPOCSVURL == "" {
		return fmt.Errorf("upstreams.spo_csv_url must not be empty")
	}
	if c.Upstreams.DRepJSONURL == "" {
		return fmt.Errorf("upstreams.drep_json_url must not be empty")
	}
	if c.Upstreams.KoiosBaseURL == "" {
		return fmt.Errorf("upstreams.koios_base_url must not be empty")
	}
	if c.Upstreams.PageLimit <= 0 {
		return fmt.Errorf("upstreams.page_limit must be positive, got %d", c.Upstreams.PageLimit)
	}
	if c.Gemini.BaseURL == "" {
		return fmt.Errorf("gemini.base_url must not be empty")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model must not be empty")
	}
	return nil
}
