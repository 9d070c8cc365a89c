// Package config loads the optional mojifix configuration file.
//
// Both YAML (gopkg.in/yaml.v3) and JSONC are supported. JSONC files are
// run through github.com/tidwall/jsonc to strip comments and trailing
// commas before encoding/json parses them. Command-line flags override
// values read here; that merge happens in the cli package.
package config
