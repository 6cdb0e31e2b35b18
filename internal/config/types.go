package config

// Config represents the user configuration of scaffold.
type Config struct {
	// Output configuration for display and logging.
	Output OutputConfig `koanf:"output"`
	// Prompt configuration for parameter collection.
	Prompt PromptConfig `koanf:"prompt"`
	// Cache configuration for cloned templates.
	Cache CacheConfig `koanf:"cache"`
	// Templates configuration for template processing.
	Templates TemplateConfig `koanf:"templates"`
	// Defaults configuration for default values.
	Defaults DefaultsConfig `koanf:"defaults"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `koanf:"color"`
	// Quiet suppresses non-error output.
	Quiet bool `koanf:"quiet"`
	// Debug enables debug logging.
	Debug bool `koanf:"debug"`
}

// PromptConfig represents prompting settings.
type PromptConfig struct {
	// Interactive asks for missing parameters when stdin is a terminal.
	Interactive bool `koanf:"interactive"`
}

// CacheConfig represents cache settings.
type CacheConfig struct {
	// Directory is where git templates are cloned.
	Directory string `koanf:"directory"`
}

// TemplateConfig represents template processing settings.
type TemplateConfig struct {
	// IgnorePatterns are excluded from every template, in addition to the
	// template's own exclude list.
	IgnorePatterns []string `koanf:"ignore_patterns"`
}

// DefaultsConfig represents default values for various settings.
type DefaultsConfig struct {
	// Parameters seed parameter values. Values given on the command line
	// take precedence.
	Parameters map[string]string `koanf:"parameters"`
}
