package params

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/scaffold/internal/template/model"
)

// scriptedPrompter answers from a per-name table and records the order of
// questions.
type scriptedPrompter struct {
	answers map[string]any
	asked   []string
	err     error
	// selectDefaults records the default index passed for select prompts.
	selectDefaults map[string]int
}

func (s *scriptedPrompter) record(p Prompt) (any, error) {
	s.asked = append(s.asked, p.Name)
	if s.err != nil {
		return nil, s.err
	}
	return s.answers[p.Name], nil
}

func (s *scriptedPrompter) String(p Prompt) (string, error) {
	v, err := s.record(p)
	if err != nil {
		return "", err
	}
	str, _ := v.(string)
	return str, nil
}

func (s *scriptedPrompter) Integer(p Prompt) (int64, error) {
	v, err := s.record(p)
	if err != nil {
		return 0, err
	}
	n, _ := v.(int64)
	return n, nil
}

func (s *scriptedPrompter) Float(p Prompt) (float64, error) {
	v, err := s.record(p)
	if err != nil {
		return 0, err
	}
	f, _ := v.(float64)
	return f, nil
}

func (s *scriptedPrompter) Boolean(p Prompt) (bool, error) {
	v, err := s.record(p)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

func (s *scriptedPrompter) Select(p Prompt, _ []string, defaultIndex int) (int, error) {
	if s.selectDefaults == nil {
		s.selectDefaults = map[string]int{}
	}
	s.selectDefaults[p.Name] = defaultIndex
	v, err := s.record(p)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return defaultIndex, nil
	}
	return v.(int), nil
}

func (s *scriptedPrompter) MultiSelect(p Prompt, _ []string, defaults []int) ([]int, error) {
	v, err := s.record(p)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return defaults, nil
	}
	return v.([]int), nil
}

func strs(values ...string) []model.Value {
	out := make([]model.Value, len(values))
	for i, v := range values {
		out[i] = model.StringValue(v)
	}
	return out
}

func TestResolve_DeclaredOrderAndTypes(t *testing.T) {
	specs := []model.NamedParameter{
		{Name: "lang", Spec: model.ParameterSpec{Message: "Language?", Type: model.ParamTypeSelect, Values: strs("rust", "go")}},
		{Name: "port", Spec: model.ParameterSpec{Message: "Port?", Type: model.ParamTypeInteger}},
		{Name: "ratio", Spec: model.ParameterSpec{Message: "Ratio?", Type: model.ParamTypeFloat}},
		{Name: "tls", Spec: model.ParameterSpec{Message: "TLS?", Type: model.ParamTypeBoolean}},
		{Name: "features", Spec: model.ParameterSpec{Message: "Features?", Type: model.ParamTypeMultiSelect, Values: strs("cli", "server", "db")}},
		{Name: "author", Spec: model.ParameterSpec{Message: "Author?", Type: model.ParamTypeString}},
	}
	p := &scriptedPrompter{answers: map[string]any{
		"lang":     1,
		"port":     int64(8080),
		"ratio":    0.5,
		"tls":      true,
		"features": []int{0, 2},
		"author":   "ada",
		"name":     "demo",
	}}

	got, err := NewResolver(p).Resolve(context.Background(), specs, nil, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"lang", "port", "ratio", "tls", "features", "author", "name"}, p.asked,
		"declared order, synthesized name last")
	assert.Equal(t, model.StringValue("go"), got["lang"])
	assert.Equal(t, model.IntegerValue(8080), got["port"])
	assert.Equal(t, model.FloatValue(0.5), got["ratio"])
	assert.Equal(t, model.BooleanValue(true), got["tls"])
	assert.Equal(t, model.ArrayValue{model.StringValue("cli"), model.StringValue("db")}, got["features"])
	assert.Equal(t, model.StringValue("ada"), got["author"])
	assert.Equal(t, model.StringValue("demo"), got["name"])
}

func TestResolve_SeededSkipsPrompt(t *testing.T) {
	specs := []model.NamedParameter{
		{Name: "lang", Spec: model.ParameterSpec{Message: "Language?", Type: model.ParamTypeSelect, Values: strs("rust", "go")}},
		{Name: "port", Spec: model.ParameterSpec{Message: "Port?", Type: model.ParamTypeInteger}},
	}
	seeded, err := ParseSeeded([]string{"lang=go", "port=9000", "extra=a=b"})
	require.NoError(t, err)

	p := &scriptedPrompter{}
	got, err := NewResolver(p).Resolve(context.Background(), specs, seeded, "demo")
	require.NoError(t, err)

	assert.Empty(t, p.asked)
	assert.Equal(t, model.StringValue("9000"), got["port"], "seeded values stay strings")
	assert.Equal(t, model.StringValue("a=b"), got["extra"])
	assert.Equal(t, model.StringValue("demo"), got["name"])
}

func TestResolve_NameOverrideWinsOverSeeded(t *testing.T) {
	seeded := model.ParameterSet{"name": model.StringValue("seeded")}
	got, err := NewResolver(&scriptedPrompter{}).Resolve(context.Background(), nil, seeded, "override")
	require.NoError(t, err)
	assert.Equal(t, model.StringValue("override"), got["name"])
	assert.Equal(t, model.StringValue("seeded"), seeded["name"], "seeded set is not modified")
}

func TestResolve_DeclaredNameAskedInPlace(t *testing.T) {
	specs := []model.NamedParameter{
		{Name: "name", Spec: model.ParameterSpec{Message: "Crate name?", Type: model.ParamTypeString}},
		{Name: "author", Spec: model.ParameterSpec{Message: "Author?", Type: model.ParamTypeString}},
	}
	p := &scriptedPrompter{answers: map[string]any{"name": "demo", "author": "ada"}}

	_, err := NewResolver(p).Resolve(context.Background(), specs, nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "author"}, p.asked)
}

func TestResolve_SelectDefaultIndex(t *testing.T) {
	specs := []model.NamedParameter{
		{Name: "first", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeSelect, Values: strs("a", "b", "c")}},
		{Name: "declared", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeSelect, Values: strs("a", "b", "c"), Default: model.StringValue("c")}},
		{Name: "foreign", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeSelect, Values: strs("a", "b"), Default: model.StringValue("z")}},
	}
	p := &scriptedPrompter{}

	got, err := NewResolver(p).Resolve(context.Background(), specs, nil, "demo")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"first": 0, "declared": 2, "foreign": 0}, p.selectDefaults)
	assert.Equal(t, model.StringValue("c"), got["declared"])
}

func TestResolve_Errors(t *testing.T) {
	promptErr := errors.New("interrupt")

	tests := []struct {
		name     string
		specs    []model.NamedParameter
		prompter Prompter
		override string
		kind     ResolverErrorKind
		param    string
	}{
		{
			name:     "select without values",
			specs:    []model.NamedParameter{{Name: "lang", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeSelect}}},
			prompter: &scriptedPrompter{},
			override: "demo",
			kind:     MissingValues,
			param:    "lang",
		},
		{
			name:     "prompter failure",
			specs:    []model.NamedParameter{{Name: "port", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeInteger}}},
			prompter: &scriptedPrompter{err: promptErr},
			override: "demo",
			kind:     PromptFailed,
			param:    "port",
		},
		{
			name:     "empty project name",
			prompter: &scriptedPrompter{answers: map[string]any{"name": ""}},
			kind:     MissingValues,
			param:    "name",
		},
		{
			name:     "non-interactive without default",
			specs:    []model.NamedParameter{{Name: "author", Spec: model.ParameterSpec{Message: "?", Required: true, Type: model.ParamTypeString}}},
			prompter: NonInteractivePrompter{},
			override: "demo",
			kind:     PromptFailed,
			param:    "author",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.prompter).Resolve(context.Background(), tt.specs, nil, tt.override)

			var resErr *ResolverError
			require.True(t, errors.As(err, &resErr), "got %v", err)
			assert.Equal(t, tt.kind, resErr.Kind)
			assert.Equal(t, tt.param, resErr.Parameter)
		})
	}
}

func TestResolve_MultiSelectWithoutValues(t *testing.T) {
	specs := []model.NamedParameter{{Name: "f", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeMultiSelect}}}

	got, err := NewResolver(&scriptedPrompter{}).Resolve(context.Background(), specs, nil, "demo")
	require.NoError(t, err)

	v, ok := got.Get("f")
	require.True(t, ok)
	assert.Equal(t, model.ArrayValue{}, v)
}

func TestResolve_NonInteractiveDefaults(t *testing.T) {
	specs := []model.NamedParameter{
		{Name: "lang", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeSelect, Values: strs("rust", "go")}},
		{Name: "port", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeInteger, Default: model.IntegerValue(80)}},
		{Name: "ratio", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeFloat, Default: model.IntegerValue(2)}},
		{Name: "tls", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeBoolean}},
		{Name: "features", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeMultiSelect, Values: strs("a", "b"), Default: model.ArrayValue{model.StringValue("b")}}},
		{Name: "desc", Spec: model.ParameterSpec{Message: "?", Type: model.ParamTypeString}},
	}

	got, err := NewResolver(nil).Resolve(context.Background(), specs, nil, "demo")
	require.NoError(t, err)

	assert.Equal(t, model.StringValue("rust"), got["lang"])
	assert.Equal(t, model.IntegerValue(80), got["port"])
	assert.Equal(t, model.FloatValue(2), got["ratio"])
	assert.Equal(t, model.BooleanValue(false), got["tls"])
	assert.Equal(t, model.ArrayValue{model.StringValue("b")}, got["features"])
	assert.Equal(t, model.StringValue(""), got["desc"])
}

func TestResolve_NameRequiredNonInteractive(t *testing.T) {
	_, err := NewResolver(nil).Resolve(context.Background(), nil, nil, "")

	var resErr *ResolverError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, PromptFailed, resErr.Kind)
	assert.ErrorIs(t, err, ErrNoDefault)
}

func TestParseSeeded_Invalid(t *testing.T) {
	for _, pair := range []string{"novalue", "=x"} {
		_, err := ParseSeeded([]string{pair})
		var resErr *ResolverError
		require.True(t, errors.As(err, &resErr), pair)
		assert.Equal(t, InvalidCliParam, resErr.Kind)
	}
}

func TestParseSeeded_EmptyValue(t *testing.T) {
	got, err := ParseSeeded([]string{"desc=", "desc=last"})
	require.NoError(t, err)
	assert.Equal(t, model.StringValue("last"), got["desc"])
}

func TestLoadParamsFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: demo\nport: 8080\ntls: true\nfeatures: [cli, db]\n"), 0644))
	tomlPath := filepath.Join(dir, "params.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("name = \"demo\"\nratio = 0.5\n"), 0644))

	fromYAML, err := LoadParamsFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, model.StringValue("demo"), fromYAML["name"])
	assert.Equal(t, model.IntegerValue(8080), fromYAML["port"])
	assert.Equal(t, model.BooleanValue(true), fromYAML["tls"])
	assert.Equal(t, model.ArrayValue{model.StringValue("cli"), model.StringValue("db")}, fromYAML["features"])

	fromTOML, err := LoadParamsFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, model.FloatValue(0.5), fromTOML["ratio"])

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("nested:\n  a: 1\n"), 0644))
	_, err = LoadParamsFile(badPath)
	var resErr *ResolverError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, InvalidCliParam, resErr.Kind)
	assert.Equal(t, "nested", resErr.Parameter)

	_, err = LoadParamsFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
