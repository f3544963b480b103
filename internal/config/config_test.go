package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "timebook"
  environment: "test"
server:
  port: 3100
storage:
  output_dir: "out"
forward:
  enabled: true
  base_url: "http://localhost:3000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3100, cfg.Server.Port)
	assert.Equal(t, "out", cfg.Storage.OutputDir)
	assert.True(t, cfg.Forward.Enabled)
	assert.Equal(t, "http://localhost:3000", cfg.Forward.BaseURL)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `app: {environment: dev}`))
	require.NoError(t, err)

	assert.Equal(t, "timebook", cfg.App.Name)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "xml_output", cfg.Storage.OutputDir)
	assert.Equal(t, "exports", cfg.Exports.Path)
	assert.Equal(t, 5, cfg.Forward.TimeoutSeconds)
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TIMEBOOK_OUTPUT_DIR", "/var/spool/timebook")

	cfg, err := Load(writeConfig(t, `
storage:
  output_dir: "${TIMEBOOK_OUTPUT_DIR}"
`))
	require.NoError(t, err)
	assert.Equal(t, "/var/spool/timebook", cfg.Storage.OutputDir)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{Storage: StorageConfig{OutputDir: "out"}},
			wantErr: false,
		},
		{
			name:    "missing output dir",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "forward enabled without base url",
			cfg: Config{
				Storage: StorageConfig{OutputDir: "out"},
				Forward: ForwardConfig{Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "forward enabled with malformed url",
			cfg: Config{
				Storage: StorageConfig{OutputDir: "out"},
				Forward: ForwardConfig{Enabled: true, BaseURL: "::not-a-url"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
