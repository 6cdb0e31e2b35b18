package params

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/tacogips/scaffold/internal/template/model"
)

// ParseSeeded parses "key=value" pairs. The value is everything after the
// first "=" and is always a string. Later pairs override earlier ones.
func ParseSeeded(pairs []string) (model.ParameterSet, error) {
	out := model.NewParameterSet()
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, newResolverError(InvalidCliParam, "",
				fmt.Sprintf("invalid parameter %q, expected key=value", pair), nil)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, newResolverError(InvalidCliParam, "",
				fmt.Sprintf("invalid parameter %q, key is empty", pair), nil)
		}
		out.Set(key, model.StringValue(value))
	}
	return out, nil
}

// LoadParamsFile reads a flat map of parameter values from a YAML file
// (.yaml, .yml) or a TOML file (any other extension). Values keep their
// decoded type.
func LoadParamsFile(path string) (model.ParameterSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newResolverError(InvalidCliParam, "", "cannot read parameters file "+path, err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, newResolverError(InvalidCliParam, "", "cannot parse parameters file "+path, err)
	}

	out := model.NewParameterSet()
	for key, item := range raw {
		v, err := model.ValueFrom(item)
		if err != nil {
			return nil, newResolverError(InvalidCliParam, key, "unsupported value in "+path, err)
		}
		out.Set(key, v)
	}
	return out, nil
}
