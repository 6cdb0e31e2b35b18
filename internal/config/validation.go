package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tacogips/scaffold/internal/template/model"
)

// Validate validates the configuration.
func Validate(config *Config) error {
	if config == nil {
		return NewConfigError(ConfigValidationFailed, "", "configuration cannot be nil")
	}

	if strings.TrimSpace(config.Cache.Directory) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "cache.directory", "cache directory cannot be empty")
	}

	for _, pattern := range config.Templates.IgnorePatterns {
		if !doublestar.ValidatePattern(strings.TrimPrefix(pattern, "./")) {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.ignore_patterns",
				"invalid glob pattern "+pattern)
		}
	}

	for name := range config.Defaults.Parameters {
		if name == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "defaults.parameters", "parameter name cannot be empty")
		}
		if name == model.ParamTargetDir {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "defaults.parameters."+name,
				"target_dir is computed and cannot be seeded")
		}
	}

	return nil
}

// SeededParameters converts the configured default parameters into a
// parameter set.
func (c *Config) SeededParameters() model.ParameterSet {
	params := model.NewParameterSet()
	for name, value := range c.Defaults.Parameters {
		params.Set(name, model.StringValue(value))
	}
	return params
}
