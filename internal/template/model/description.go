package model

import (
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// ScaffoldDescription is the parsed content of .scaffold.toml.
type ScaffoldDescription struct {
	// Template holds the tree-level settings.
	Template TemplateSection
	// Parameters lists the declared parameters in declaration order.
	Parameters []NamedParameter
	// Hooks holds the lifecycle commands.
	Hooks Hooks
}

// TemplateSection is the [template] table.
type TemplateSection struct {
	// Exclude lists glob patterns of entries that are never generated.
	Exclude []string
	// DisableTemplating lists glob patterns of files copied verbatim.
	DisableTemplating []string
	// Notes is rendered and shown after generation. Nil when not declared.
	Notes *string
}

// Hooks is the [hooks] table.
type Hooks struct {
	// Pre runs in the target directory before any entry is written.
	Pre []string
	// Post runs in the target directory after every entry is written.
	Post []string
}

// NamedParameter pairs a parameter name with its spec.
type NamedParameter struct {
	Name string
	Spec ParameterSpec
}

// ParameterSpec describes how a parameter is obtained.
type ParameterSpec struct {
	// Message is the prompt shown to the user.
	Message string
	// Required rejects empty answers.
	Required bool
	// Type is the parameter type.
	Type ParameterType
	// Default is the suggested answer. Nil when not declared.
	Default Value
	// Values lists the choices of select and multiselect parameters.
	Values []Value
	// Tags are free-form labels, unused by generation.
	Tags []string
}

// Parameter returns the spec declared under name.
func (d *ScaffoldDescription) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p.Spec, true
		}
	}
	return ParameterSpec{}, false
}

type rawDescription struct {
	Template struct {
		Exclude           []string `toml:"exclude"`
		DisableTemplating []string `toml:"disable_templating"`
		Notes             *string  `toml:"notes"`
	} `toml:"template"`
	Parameters map[string]*rawParameter `toml:"parameters"`
	Hooks      struct {
		Pre  []string `toml:"pre"`
		Post []string `toml:"post"`
	} `toml:"hooks"`
}

type rawParameter struct {
	Message  *string  `toml:"message"`
	Required bool     `toml:"required"`
	Type     *string  `toml:"type"`
	Default  any      `toml:"default"`
	Values   []any    `toml:"values"`
	Tags     []string `toml:"tags"`
}

// ParseDescription parses and validates a descriptor document.
// Unknown fields are ignored.
func ParseDescription(data []byte) (*ScaffoldDescription, error) {
	var raw rawDescription
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, newDescriptionError(DescriptionMalformed, "", "invalid TOML syntax", err)
	}

	desc := &ScaffoldDescription{
		Template: TemplateSection{
			Exclude:           raw.Template.Exclude,
			DisableTemplating: raw.Template.DisableTemplating,
			Notes:             raw.Template.Notes,
		},
		Hooks: Hooks{
			Pre:  raw.Hooks.Pre,
			Post: raw.Hooks.Post,
		},
	}

	for _, name := range parameterOrder(data, raw.Parameters) {
		spec, err := convertParameter(name, raw.Parameters[name])
		if err != nil {
			return nil, err
		}
		desc.Parameters = append(desc.Parameters, NamedParameter{Name: name, Spec: spec})
	}

	return desc, nil
}

func convertParameter(name string, raw *rawParameter) (ParameterSpec, error) {
	if raw == nil {
		raw = &rawParameter{}
	}
	field := "parameters." + name
	if raw.Message == nil {
		return ParameterSpec{}, newDescriptionError(DescriptionMissingField, field+".message", "message is required", nil)
	}
	if raw.Type == nil {
		return ParameterSpec{}, newDescriptionError(DescriptionMissingField, field+".type", "type is required", nil)
	}

	typ := ParameterType(*raw.Type)
	if !typ.Valid() {
		return ParameterSpec{}, newDescriptionError(DescriptionMalformed, field+".type",
			"unknown parameter type "+*raw.Type, nil)
	}

	spec := ParameterSpec{
		Message:  *raw.Message,
		Required: raw.Required,
		Type:     typ,
		Tags:     raw.Tags,
	}

	if raw.Default != nil {
		v, err := ValueFrom(raw.Default)
		if err != nil {
			return ParameterSpec{}, newDescriptionError(DescriptionMalformed, field+".default", "invalid default", err)
		}
		spec.Default = v
	}

	for _, item := range raw.Values {
		v, err := ValueFrom(item)
		if err != nil {
			return ParameterSpec{}, newDescriptionError(DescriptionMalformed, field+".values", "invalid value", err)
		}
		spec.Values = append(spec.Values, v)
	}

	return spec, nil
}

// parameterOrder recovers the declaration order of the [parameters.*]
// tables. Decoding into a map loses it, so the document is scanned again
// with the low-level parser. Names it cannot place are appended sorted.
func parameterOrder(data []byte, params map[string]*rawParameter) []string {
	var order []string
	seen := make(map[string]bool, len(params))
	record := func(name string) {
		if _, declared := params[name]; declared && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	p := unstable.Parser{}
	p.Reset(data)
	var table []string
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(expr.Key())
			if len(table) >= 2 && table[0] == "parameters" {
				record(table[1])
			}
		case unstable.KeyValue:
			full := append(append([]string{}, table...), keyParts(expr.Key())...)
			switch {
			case len(full) >= 2 && full[0] == "parameters":
				record(full[1])
			case len(full) == 1 && full[0] == "parameters" && expr.Value().Kind == unstable.InlineTable:
				children := expr.Value().Children()
				for children.Next() {
					if k := keyParts(children.Node().Key()); len(k) > 0 {
						record(k[0])
					}
				}
			}
		}
	}

	var rest []string
	for name := range params {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
