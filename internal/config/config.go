package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/mojifix/internal/model"
)

// DefaultExtension is the only extension processed when neither a config
// file nor --ext says otherwise.
const DefaultExtension = ".md"

// FileNames lists the config file names looked up in the working directory,
// in priority order.
var FileNames = []string{
	".mojifix.yaml",
	".mojifix.yml",
	".mojifix.json",
	".mojifix.jsonc",
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings shared by the fix and check commands.
//
// Example .mojifix.yaml:
//
//	extensions: [.md, .markdown]
//	exclude: [node_modules, vendor]
//	jobs: 4
//	strict: true
type Config struct {
	// Extensions are the file extensions (with leading dot) that are
	// collected from directories and accepted as explicit file arguments.
	Extensions []string `yaml:"extensions" json:"extensions"`

	// Exclude holds directory name patterns (path.Match syntax) pruned
	// while walking directories.
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Jobs is the number of files processed concurrently.
	Jobs int `yaml:"jobs" json:"jobs"`

	// Strict refuses repairs that had to pass code points above U+00FF
	// through unchanged.
	Strict bool `yaml:"strict" json:"strict"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Extensions: []string{DefaultExtension},
		Jobs:       1,
	}
}

// Find looks for one of FileNames in dir and returns its path.
// The boolean is false when no config file exists.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load reads a config file and overlays it on Default. The format is chosen
// by extension: .yaml/.yml use YAML, .json/.jsonc use JSON with comments
// and trailing commas allowed.
//
// Returns a CLIError with ExitConfigError if the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitConfigError,
				fmt.Sprintf("config file not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file type %q (use .yaml, .yml, .json or .jsonc)", ErrInvalid, ext)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Normalize lowercases extensions, adds a missing leading dot, drops
// duplicates, and validates the result.
func (c *Config) Normalize() error {
	seen := make(map[string]bool, len(c.Extensions))
	exts := make([]string, 0, len(c.Extensions))
	for _, e := range c.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			return fmt.Errorf("%w: empty extension", ErrInvalid)
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.ContainsAny(e, `/\`) {
			return fmt.Errorf("%w: extension %q must not contain a path separator", ErrInvalid, e)
		}
		if !seen[e] {
			seen[e] = true
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		return fmt.Errorf("%w: at least one extension is required", ErrInvalid)
	}
	c.Extensions = exts

	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: exclude pattern %q: %v", ErrInvalid, pattern, err)
		}
	}

	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalid, c.Jobs)
	}
	return nil
}

// IsMarkdownOnly reports whether the default extension is the only one
// configured. The CLI uses it to word its messages like "markdown file(s)".
func (c *Config) IsMarkdownOnly() bool {
	return len(c.Extensions) == 1 && c.Extensions[0] == DefaultExtension
}
