package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dxbednarczyk/mup/internal/adapters/config"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestLoader_Load_Defaults(t *testing.T) {
	dir := t.TempDir()
	loader := &config.Loader{Environment: map[string]string{}}

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, domain.LockfileName), cfg.Lockfile)
	assert.Equal(t, filepath.Join(dir, domain.MupDirName, domain.HistoryFileName), cfg.HistoryPath)
	assert.Equal(t, domain.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, domain.DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, domain.DefaultModrinthURL, cfg.Modrinth.BaseURL)
	assert.Equal(t, domain.DefaultHangarURL, cfg.Hangar.BaseURL)
	assert.True(t, cfg.Resolve.SkipClientOnlyDependencies)
	assert.False(t, cfg.Resolve.CascadeOptional)
	assert.Equal(t, domain.DefaultVerifyConcurrency, cfg.VerifyConcurrency)
	assert.False(t, cfg.LogJSON)
}

func TestLoader_Load_File(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, `
lockfile: server/mup.lock
user_agent: tester/1.0
http_timeout: 5s
providers:
  modrinth:
    base_url: http://localhost:8080/v2/
resolve:
  skip_client_only_dependencies: false
  cascade_optional: true
verify:
  concurrency: 8
log:
  json: true
`)

	cfg, err := (&config.Loader{Environment: map[string]string{}}).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "server", "mup.lock"), cfg.Lockfile)
	assert.Equal(t, "tester/1.0", cfg.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:8080/v2", cfg.Modrinth.BaseURL)
	assert.Equal(t, domain.DefaultHangarURL, cfg.Hangar.BaseURL, "unset keys keep their default")
	assert.False(t, cfg.Resolve.SkipClientOnlyDependencies)
	assert.True(t, cfg.Resolve.CascadeOptional)
	assert.Equal(t, 8, cfg.VerifyConcurrency)
	assert.True(t, cfg.LogJSON)
}

func TestLoader_Load_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, domain.ConfigFileName, "user_agent: from-file\nhttp_timeout: 5s\n")

	loader := &config.Loader{Environment: map[string]string{
		"MUP_USER_AGENT":   "from-env",
		"MUP_HTTP_TIMEOUT": "1m",
		"MUP_LOCKFILE":     "/srv/minecraft/mup.lock",
		"MUP_MODRINTH_URL": "http://modrinth.test",
		"MUP_HANGAR_URL":   "http://hangar.test",
		"MUP_LOG_JSON":     "true",
	}}

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.UserAgent)
	assert.Equal(t, time.Minute, cfg.HTTPTimeout)
	assert.Equal(t, filepath.Clean("/srv/minecraft/mup.lock"), cfg.Lockfile)
	assert.Equal(t, "http://modrinth.test", cfg.Modrinth.BaseURL)
	assert.Equal(t, "http://hangar.test", cfg.Hangar.BaseURL)
	assert.True(t, cfg.LogJSON)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	path := createFile(t, other, "custom.yaml", "user_agent: custom\n")

	cfg, err := (&config.Loader{Environment: map[string]string{config.PathEnv: path}}).Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.UserAgent)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			content: "resolve: [unclosed",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "negative timeout",
			content: "http_timeout: -1s\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "zero verify concurrency",
			content: "verify:\n  concurrency: 0\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "bad environment value",
			env:     map[string]string{"MUP_HTTP_TIMEOUT": "soon"},
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "missing explicit file",
			env:     map[string]string{config.PathEnv: "does-not-exist.yaml"},
			wantErr: domain.ErrConfigReadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				createFile(t, dir, domain.ConfigFileName, tt.content)
			}
			env := tt.env
			if env == nil {
				env = map[string]string{}
			}

			_, err := (&config.Loader{Environment: env}).Load(dir)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
