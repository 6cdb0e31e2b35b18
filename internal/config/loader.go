package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tacogips/scaffold/internal/debug"
)

// EnvPrefix prefixes environment variables overriding the configuration,
// e.g. SCAFFOLD_OUTPUT_COLOR=false sets output.color.
const EnvPrefix = "SCAFFOLD_"

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads defaults, then the file at path, then the environment.
	Load(path string) (*Config, error)
	// LoadOrDefault is Load, treating a missing file as empty.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements Loader with koanf.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
func (l *FileLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}
	return l.load(path)
}

// LoadOrDefault loads configuration or falls back to defaults and the
// environment if the file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return l.load(path)
		}
	}
	debug.Debug("[config] No configuration file at %q, using defaults", path)
	return l.load("")
}

func (l *FileLoader) load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to load defaults", err)
	}

	if path != "" {
		debug.Debug("[config] Loading %s", path)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid TOML syntax", err)
		}
	}

	if err := k.Load(envProvider(), nil); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to load environment", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to decode configuration", err)
	}
	if cfg.Defaults.Parameters == nil {
		cfg.Defaults.Parameters = map[string]string{}
	}

	if err := l.Validate(&cfg); err != nil {
		if cfgErr, ok := err.(*ConfigError); ok {
			cfgErr.File = path
		}
		return nil, err
	}
	return &cfg, nil
}

// envProvider maps SCAFFOLD_SECTION_KEY to section.key. Only the first
// underscore after the prefix separates section and key, so
// SCAFFOLD_TEMPLATES_IGNORE_PATTERNS maps to templates.ignore_patterns.
// List values are comma separated.
func envProvider() koanf.Provider {
	return env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		mapped := envKey(key)
		if mapped == "templates.ignore_patterns" {
			return mapped, strings.Split(value, ",")
		}
		return mapped, value
	})
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok || key == "" {
		return ""
	}
	return section + "." + key
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	return Validate(config)
}
