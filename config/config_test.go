package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "senseparse.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
storage:
  doc_path: "/var/lib/senses.db"

log:
  level: "debug"
  format: "json"

render:
  no_color: true
  format: "all"

query:
  limit: 50
  batch_size: 10
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/senses.db", cfg.Storage.DocPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Render.NoColor)
	assert.Equal(t, "all", cfg.Render.Format)
	assert.Equal(t, 50, cfg.Query.Limit)
	assert.Equal(t, 10, cfg.Query.BatchSize)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("SENSEPARSE_DOC_PATH", "/tmp/docs")
	t.Setenv("SENSEPARSE_FORMAT", "label")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/docs", cfg.Storage.DocPath)
	assert.Equal(t, "label", cfg.Render.Format)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("SENSEPARSE_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Storage.DocPath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Render.NoColor)
	assert.Equal(t, "best", cfg.Render.Format)
	assert.Equal(t, 2000, cfg.Query.Limit)
	assert.Equal(t, 500, cfg.Query.BatchSize)
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("SENSEPARSE_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "all", cfg.Render.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"log format", "log:\n  format: xml\n"},
		{"render format", "render:\n  format: aggr\n"},
		{"query limit", "query:\n  limit: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeYAML(t, t.TempDir(), tt.yaml)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
