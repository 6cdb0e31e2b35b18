// Package params resolves the parameter set of a run from seeded values,
// declared parameter specs and a Prompter.
package params

import (
	"context"

	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/template/model"
)

// ProjectNameMessage is the question asked when "name" is not declared.
const ProjectNameMessage = "What is the name of your generated project?"

// Resolver builds parameter sets.
type Resolver struct {
	prompter Prompter
}

// NewResolver creates a Resolver. A nil prompter never asks and uses
// defaults.
func NewResolver(p Prompter) *Resolver {
	if p == nil {
		p = NonInteractivePrompter{}
	}
	return &Resolver{prompter: p}
}

// Resolve returns the final parameter set. Seeded values are kept as they
// are; every declared parameter missing from seeded is prompted for in
// declared order. A non-empty projectNameOverride binds "name". When
// "name" is still unbound after the declared parameters, it is prompted
// for last. The result always binds "name" to a non-empty string.
func (r *Resolver) Resolve(ctx context.Context, specs []model.NamedParameter, seeded model.ParameterSet, projectNameOverride string) (model.ParameterSet, error) {
	out := model.NewParameterSet()
	out.Merge(seeded)
	if projectNameOverride != "" {
		out.Set(model.ParamName, model.StringValue(projectNameOverride))
	}

	for _, p := range specs {
		if out.Has(p.Name) {
			debug.Debug("[params] %s is seeded", p.Name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err := r.ask(p.Name, p.Spec)
		if err != nil {
			return nil, err
		}
		debug.Debug("[params] %s = %s", p.Name, v)
		out.Set(p.Name, v)
	}

	if !out.Has(model.ParamName) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := r.ask(model.ParamName, model.ParameterSpec{
			Message:  ProjectNameMessage,
			Required: true,
			Type:     model.ParamTypeString,
		})
		if err != nil {
			return nil, err
		}
		out.Set(model.ParamName, v)
	}

	if _, err := out.Name(); err != nil {
		return nil, newResolverError(MissingValues, model.ParamName, "project name is required", err)
	}

	return out, nil
}

// ask obtains one value from the prompter according to spec.Type.
func (r *Resolver) ask(name string, spec model.ParameterSpec) (model.Value, error) {
	prompt := Prompt{
		Name:     name,
		Message:  spec.Message,
		Required: spec.Required,
		Default:  spec.Default,
	}

	failed := func(err error) error {
		return newResolverError(PromptFailed, name, "cannot read value", err)
	}

	switch spec.Type {
	case model.ParamTypeInteger:
		v, err := r.prompter.Integer(prompt)
		if err != nil {
			return nil, failed(err)
		}
		return model.IntegerValue(v), nil

	case model.ParamTypeFloat:
		v, err := r.prompter.Float(prompt)
		if err != nil {
			return nil, failed(err)
		}
		return model.FloatValue(v), nil

	case model.ParamTypeBoolean:
		v, err := r.prompter.Boolean(prompt)
		if err != nil {
			return nil, failed(err)
		}
		return model.BooleanValue(v), nil

	case model.ParamTypeSelect:
		if len(spec.Values) == 0 {
			return nil, newResolverError(MissingValues, name, "select parameter declares no values", nil)
		}
		idx, err := r.prompter.Select(prompt, labels(spec.Values), defaultIndex(spec))
		if err != nil {
			return nil, failed(err)
		}
		if idx < 0 || idx >= len(spec.Values) {
			return nil, newResolverError(PromptFailed, name, "selection out of range", nil)
		}
		return spec.Values[idx], nil

	case model.ParamTypeMultiSelect:
		if len(spec.Values) == 0 {
			return model.ArrayValue{}, nil
		}
		indices, err := r.prompter.MultiSelect(prompt, labels(spec.Values), defaultIndices(spec))
		if err != nil {
			return nil, failed(err)
		}
		out := make(model.ArrayValue, 0, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(spec.Values) {
				return nil, newResolverError(PromptFailed, name, "selection out of range", nil)
			}
			out = append(out, spec.Values[idx])
		}
		return out, nil

	default:
		v, err := r.prompter.String(prompt)
		if err != nil {
			return nil, failed(err)
		}
		if spec.Required && v == "" {
			return nil, newResolverError(MissingValues, name, "value is required", nil)
		}
		return model.StringValue(v), nil
	}
}

func labels(values []model.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

// defaultIndex is the position of the declared default among the values,
// or 0.
func defaultIndex(spec model.ParameterSpec) int {
	if spec.Default == nil {
		return 0
	}
	for i, v := range spec.Values {
		if model.Equal(v, spec.Default) {
			return i
		}
	}
	return 0
}

// defaultIndices maps a declared default (one value or an array) onto
// positions among the values.
func defaultIndices(spec model.ParameterSpec) []int {
	var wanted []model.Value
	switch d := spec.Default.(type) {
	case nil:
		return []int{}
	case model.ArrayValue:
		wanted = d
	default:
		wanted = []model.Value{d}
	}

	out := []int{}
	for i, v := range spec.Values {
		for _, w := range wanted {
			if model.Equal(v, w) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
