package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/mojifix/internal/model"
)

// writeFile is a test helper that writes content to name inside dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{".md"}, cfg.Extensions)
	assert.Empty(t, cfg.Exclude)
	assert.Equal(t, 1, cfg.Jobs)
	assert.False(t, cfg.Strict)
	assert.True(t, cfg.IsMarkdownOnly())
}

// TestLoad_YAML verifies YAML parsing and extension normalization.
func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".mojifix.yaml", `
extensions: [md, .Markdown, .md]
exclude:
  - node_modules
  - "vendor*"
jobs: 4
strict: true
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
	assert.Equal(t, []string{"node_modules", "vendor*"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Jobs)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.IsMarkdownOnly())
}

// TestLoad_JSONC verifies that comments and trailing commas are accepted.
func TestLoad_JSONC(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".mojifix.jsonc", `{
  // only docs
  "extensions": [".txt"],
  /* run in parallel */
  "jobs": 2,
}`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{".txt"}, cfg.Extensions)
	assert.Equal(t, 2, cfg.Jobs)
	assert.False(t, cfg.Strict)
}

// TestLoad_PartialKeepsDefaults checks that omitted keys keep their defaults.
func TestLoad_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".mojifix.yml", "strict: true\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{".md"}, cfg.Extensions)
	assert.Equal(t, 1, cfg.Jobs)
	assert.True(t, cfg.Strict)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".mojifix.yaml"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantSent bool
	}{
		{"zero jobs", ".mojifix.yaml", "jobs: 0\n", true},
		{"empty extension", ".mojifix.yaml", "extensions: [\"\"]\n", true},
		{"no extensions", ".mojifix.json", `{"extensions": []}`, true},
		{"separator in extension", ".mojifix.yaml", "extensions: [a/b]\n", true},
		{"bad exclude pattern", ".mojifix.yaml", "exclude: [\"[\"]\n", true},
		{"unsupported type", "mojifix.toml", "jobs = 1\n", true},
		{"malformed yaml", ".mojifix.yaml", "jobs: [\n", false},
		{"malformed json", ".mojifix.json", `{"jobs": }`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := Load(p)
			require.Error(t, err)
			assert.Equal(t, tt.wantSent, errors.Is(err, ErrInvalid))
		})
	}
}

// TestFind checks lookup order and the not-found case.
func TestFind(t *testing.T) {
	dir := t.TempDir()

	_, ok := Find(dir)
	assert.False(t, ok)

	writeFile(t, dir, ".mojifix.json", "{}")
	p, ok := Find(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".mojifix.json"), p)

	writeFile(t, dir, ".mojifix.yaml", "jobs: 1\n")
	p, ok = Find(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".mojifix.yaml"), p, "yaml takes priority over json")
}

func TestFind_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".mojifix.yaml"), 0o755))

	_, ok := Find(dir)
	assert.False(t, ok)
}
