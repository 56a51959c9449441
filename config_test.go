package supereasy

import (
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ChannelName, cfg.Channel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.StrictDispatch)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "empty channel", mutate: func(c *Config) { c.Channel = "" }, wantField: "channel"},
		{name: "long channel", mutate: func(c *Config) { c.Channel = long(129) }, wantField: "channel"},
		{name: "long label", mutate: func(c *Config) { c.PlatformLabel = long(33) }, wantField: "platform_label"},
		{name: "long override", mutate: func(c *Config) { c.VersionOverride = long(65) }, wantField: "version_override"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantField: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *errors.ConfigError
			require.True(t, stdErrors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	type SimpleConfig struct {
		Host string `json:"host" validate:"required"`
		Port int    `json:"port" validate:"required,min=1,max=65535"`
	}

	t.Run("valid", func(t *testing.T) {
		var target SimpleConfig
		require.NoError(t, ValidateConfig(map[string]any{"host": "example.com", "port": 443}, &target))
		assert.Equal(t, "example.com", target.Host)
		assert.Equal(t, 443, target.Port)
	})

	t.Run("missing required", func(t *testing.T) {
		var target SimpleConfig
		err := ValidateConfig(map[string]any{"host": "example.com"}, &target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("unknown key", func(t *testing.T) {
		var target SimpleConfig
		err := ValidateConfig(map[string]any{"host": "a", "port": 1, "extra": true}, &target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field")
	})

	t.Run("wrong type", func(t *testing.T) {
		var target SimpleConfig
		err := ValidateConfig(map[string]any{"host": "a", "port": "https"}, &target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal")
	})
}

func TestParseConfig(t *testing.T) {
	t.Run("defaults for empty document", func(t *testing.T) {
		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
platform_label: iOS
strict_dispatch: true
log_level: debug
`))
		require.NoError(t, err)
		assert.Equal(t, ChannelName, cfg.Channel)
		assert.Equal(t, "iOS", cfg.PlatformLabel)
		assert.True(t, cfg.StrictDispatch)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := ParseConfig([]byte("log_level: loud\n"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("channel: [\n"))
		require.Error(t, err)
		var cfgErr *errors.ConfigError
		assert.True(t, stdErrors.As(err, &cfgErr))
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "supereasy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel: store\nversion_override: \"17.4\"\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "store", cfg.Channel)
	assert.Equal(t, "17.4", cfg.VersionOverride)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
