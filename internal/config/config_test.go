package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 600, cfg.Canvas.Width)
	assert.Equal(t, 400, cfg.Canvas.Height)
	assert.Equal(t, "Letter", cfg.Export.PageSize)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("data_dir: /tmp/notedesk-test\nlog:\n  level: debug\n  format: text\ncanvas:\n  width: 800\n  height: 600\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/notedesk-test", cfg.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 800, cfg.Canvas.Width)
	assert.Equal(t, 600, cfg.Canvas.Height)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad log level", "log:\n  level: verbose\n"},
		{"bad page size", "export:\n  page_size: Tabloid\n"},
		{"zero canvas width", "canvas:\n  width: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
