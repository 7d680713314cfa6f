package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
api:
  base_url: http://localhost:9090
auth:
  user_id: u1
  access_token: tok
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "http://localhost:9090", cfg.API.BaseURL)
				assert.True(t, cfg.Auth.Static())
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
auth:
  user_id: u1
  access_token: tok
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
				assert.Equal(t, 10*time.Second, cfg.API.Timeout)
				assert.Equal(t, 10.0, cfg.API.RateLimit.PerSecond)
				assert.Equal(t, 20, cfg.API.RateLimit.Burst)
				assert.Equal(t, DefaultContactTemplate, cfg.Contact.Template)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
			},
		},
		{
			name: "env var substitution",
			yaml: `
auth:
  endpoint: https://auth.example.com
  refresh_token: ${KART_TEST_REFRESH}
`,
			envVars: map[string]string{"KART_TEST_REFRESH": "rt-secret"},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "rt-secret", cfg.Auth.RefreshToken)
			},
		},
		{
			name: "refresh token without endpoint rejected",
			yaml: `
auth:
  refresh_token: rt
`,
			wantErr: "auth.endpoint is required",
		},
		{
			name: "endpoint without refresh token rejected",
			yaml: `
auth:
  endpoint: https://auth.example.com
`,
			wantErr: "auth.refresh_token is required",
		},
		{
			name: "webhook enabled without url rejected",
			yaml: `
notifications:
  webhook:
    enabled: true
`,
			wantErr: "notifications.webhook.url is required",
		},
		{
			name: "no auth at all is allowed",
			yaml: `
api:
  base_url: http://localhost:9090
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Auth.Static())
				assert.Empty(t, cfg.Auth.Endpoint)
			},
		},
		{
			name:    "invalid yaml",
			yaml:    "api: [not a map",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			cfg, err := Load(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_Validate(t *testing.T) {
	t.Parallel()

	d := &DatabaseConfig{}
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host is required")
	assert.Contains(t, err.Error(), "database.name is required")
	assert.Contains(t, err.Error(), "database.user is required")

	d = &DatabaseConfig{Host: "localhost", Name: "kart", User: "kart"}
	assert.NoError(t, d.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	d := &DatabaseConfig{
		Host: "db", Port: 5433, Name: "kart", User: "u", Password: "p", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5433 dbname=kart user=u password=p sslmode=disable",
		d.DSN(),
	)
}
