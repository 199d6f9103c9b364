package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8084, cfg.Server.Port)
	assert.Equal(t, "https://api.koios.rest/api/v1", cfg.Upstreams.KoiosBaseURL)
	assert.Equal(t, 1000, cfg.Upstreams.PageLimit)
	assert.NotEmpty(t, cfg.Upstreams.SPOCSVURL)
	assert.NotEmpty(t, cfg.Upstreams.DRepJSONURL)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 200, cfg.CORS.PreflightStatus)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GOVPROXY_SERVER_PORT", "9090")
	t.Setenv("GOVPROXY_GEMINI_MODEL", "gemini-2.0-pro")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gemini-2.0-pro", cfg.Gemini.Model)
}

func TestLoad_BareGeminiKeyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-bare-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-bare-env", cfg.Gemini.APIKey)
}

func TestLoad_PrefixedKeyWinsOverBare(t *testing.T) {
	t.Setenv("GOVPROXY_GEMINI_API_KEY", "from-prefixed-env")
	t.Setenv("GEMINI_API_KEY", "from-bare-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-prefixed-env", cfg.Gemini.APIKey)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing key is not a validation error", func(t *testing.T) {
		cfg := valid()
		cfg.Gemini.APIKey = ""
		assert.NoError(t, cfg.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"empty csv url", func(c *Config) { c.Upstreams.SPOCSVURL = "" }, "spo_csv_url"},
		{"empty drep url", func(c *Config) { c.Upstreams.DRepJSONURL = "" }, "drep_json_url"},
		{"empty koios url", func(c *Config) { c.Upstreams.KoiosBaseURL = "" }, "koios_base_url"},
		{"zero page limit", func(c *Config) { c.Upstreams.PageLimit = 0 }, "page_limit"},
		{"empty gemini base", func(c *Config) { c.Gemini.BaseURL = "" }, "gemini.base_url"},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }, "gemini.model"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
