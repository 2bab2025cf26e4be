package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Http.Port)
	assert.Equal(t, DefaultTimeout, cfg.Http.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Http.AllowedOrigins)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultModelDir, cfg.Model.Dir)
	assert.Equal(t, DefaultScalerFile, cfg.Model.ScalerFile)
	assert.Equal(t, DefaultClassifierFile, cfg.Model.ClassifierFile)
	assert.Equal(t, DefaultTimezone, cfg.Features.Timezone)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Http.Port)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9090
  timeout: 5s
log:
  level: debug
  format: json
model:
  dir: /srv/models
  classifier_file: tree.json
features:
  timezone: America/New_York
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Http.Port)
	assert.Equal(t, 5*time.Second, cfg.Http.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/srv/models", cfg.Model.Dir)
	assert.Equal(t, DefaultScalerFile, cfg.Model.ScalerFile)
	assert.Equal(t, "tree.json", cfg.Model.ClassifierFile)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FRAUDCHECK_PORT", "7000")
	t.Setenv("FRAUDCHECK_LOG_LEVEL", "warn")
	t.Setenv("FRAUDCHECK_MODEL_DIR", "/tmp/models")

	cfg, err := Load(writeConfig(t, "http:\n  port: 9090\n"))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Http.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/models", cfg.Model.Dir)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "http: [unterminated"},
		{"port", "http:\n  port: 70000\n"},
		{"format", "log:\n  format: xml\n"},
		{"timezone", "features:\n  timezone: Mars/Olympus\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadBadEnvPort(t *testing.T) {
	t.Setenv("FRAUDCHECK_PORT", "eighty")
	_, err := Load(writeConfig(t, ""))
	assert.ErrorContains(t, err, "FRAUDCHECK_PORT")
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zap.NewNop(), func(cfg *Config) {
			select {
			case changes <- cfg:
			default:
			}
		})
	}()

	// give the watcher time to register before editing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	// a truncating write can surface an intermediate empty file first
	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case cfg := <-changes:
			reloaded = cfg.Log.Level == "debug"
		case <-timeout:
			t.Fatal("timed out waiting for config reload")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}
