package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Color: true,
			Quiet: false,
			Debug: false,
		},
		Prompt: PromptConfig{
			Interactive: true,
		},
		Cache: CacheConfig{
			Directory: DefaultCacheDir(),
		},
		Templates: TemplateConfig{
			IgnorePatterns: DefaultIgnorePatterns(),
		},
		Defaults: DefaultsConfig{
			Parameters: map[string]string{},
		},
	}
}

// defaultMap is DefaultConfig in the shape koanf loads.
func defaultMap() map[string]interface{} {
	cfg := DefaultConfig()
	patterns := make([]interface{}, len(cfg.Templates.IgnorePatterns))
	for i, p := range cfg.Templates.IgnorePatterns {
		patterns[i] = p
	}
	return map[string]interface{}{
		"output.color":              cfg.Output.Color,
		"output.quiet":              cfg.Output.Quiet,
		"output.debug":              cfg.Output.Debug,
		"prompt.interactive":        cfg.Prompt.Interactive,
		"cache.directory":           cfg.Cache.Directory,
		"templates.ignore_patterns": patterns,
	}
}

// DefaultIgnorePatterns returns the default ignore patterns.
func DefaultIgnorePatterns() []string {
	return []string{
		".DS_Store",
		"Thumbs.db",
		"*.swp",
		"*.swo",
		"*~",
	}
}

// DefaultCacheDir returns the default directory for cloned templates.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "scaffold")
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "scaffold", "config.toml")
}
