package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	cfg, err := ReadConfig(configPath)
	require.NoError(t, err, "ReadConfig() error")

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.NotEmpty(t, cfg.External.Name)
	assert.NotEmpty(t, cfg.Host.Name)

	// defaults applied by validate
	assert.Equal(t, "adm_", cfg.External.Prefix)
	assert.Equal(t, "Admidio", cfg.Bridge.ResponseType)
}

func TestReadConfigEnvOverride(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err)

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	t.Setenv("ADMIDIO_BRIDGE_CONFIG_JSON", `{"Webserver":{"Port":9999,"URL":"http://override"}}`)

	cfg, err := ReadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Webserver.Port)
	assert.Equal(t, "http://override", cfg.Webserver.URL)
}

func TestConfigValidation(t *testing.T) {
	valid := func() Config {
		return Config{
			Webserver: Webserver{Port: 8080, URL: "http://localhost"},
			External:  DB{Name: "admidio"},
			Host:      DB{Name: "host"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Webserver.Port = 0 },
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.Webserver.URL = "" },
			wantErr: ErrEmptyURL,
		},
		{
			name:    "missing external db name",
			mutate:  func(c *Config) { c.External.Name = "" },
			wantErr: ErrExternalDBNameEmpty,
		},
		{
			name:    "missing host db name",
			mutate:  func(c *Config) { c.Host.Name = "" },
			wantErr: ErrHostDBNameEmpty,
		},
		{
			name:    "bogus engine",
			mutate:  func(c *Config) { c.Host.Engine = "oracle" },
			wantErr: ErrUnknownEngine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := validate(&cfg)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Webserver: Webserver{Port: 8080, URL: "http://localhost"},
		External:  DB{Name: "admidio"},
		Host:      DB{Name: "host"},
	}

	require.NoError(t, validate(&cfg))

	assert.Equal(t, 5, cfg.Webserver.ShutDownTime)
	assert.Equal(t, EngineMySQL, cfg.External.Engine)
	assert.Equal(t, EngineMySQL, cfg.Host.Engine)
	assert.Equal(t, "adm_", cfg.External.Prefix)
	assert.Equal(t, "Admidio", cfg.Bridge.ResponseType)
}

func TestRedacted(t *testing.T) {
	cfg := Config{
		External: DB{Password: "top-secret"},
		Host:     DB{Password: "also-secret"},
	}

	red := Redacted(cfg)

	assert.Equal(t, "<redacted>", red.External.Password)
	assert.Equal(t, "<redacted>", red.Host.Password)
	// original untouched
	assert.Equal(t, "top-secret", cfg.External.Password)
}
