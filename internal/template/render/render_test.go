package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/scaffold/internal/template/model"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(t.TempDir())
	require.NoError(t, err)
	return e
}

func TestEngine_Render(t *testing.T) {
	e := newEngine(t)
	params := model.ParameterSet{
		"name":     model.StringValue("demo"),
		"port":     model.IntegerValue(8080),
		"tls":      model.BooleanValue(true),
		"ratio":    model.FloatValue(0.25),
		"features": model.ArrayValue{model.StringValue("cli"), model.StringValue("server")},
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain text", "no placeholders here\n", "no placeholders here\n"},
		{"compact placeholder", "hello {{name}}", "hello demo"},
		{"spaced placeholder", "hello {{ name }}", "hello demo"},
		{"integer", "port={{ port }}", "port=8080"},
		{"conditional", "{% if tls %}https{% else %}http{% endif %}", "https"},
		{"loop", "{% for f in features %}{{ f }};{% endfor %}", "cli;server;"},
		{"boolean", "debug = {{ tls }}", "debug = true"},
		{"float", "ratio = {{ ratio }}", "ratio = 0.25"},
		{"array", "features = {{ features }}", "features = [cli, server]"},
		{"negated boolean", "{% if not tls %}off{% else %}on{% endif %}", "on"},
		{"float comparison", "{% if ratio > 0.1 %}high{% endif %}", "high"},
		{"integer equality", "{% if port == 8080 %}default{% endif %}", "default"},
		{"membership", `{% if "cli" in features %}cli{% endif %}`, "cli"},
		{"array length", "{{ features|length }}", "2"},
		{"undefined renders empty", "[{{ missing }}]", "[]"},
		{"no html escaping", "{{ name }}<&>", "demo<&>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Render(tt.name, tt.text, params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_RangeFilter(t *testing.T) {
	e := newEngine(t)
	params := model.ParameterSet{"players_nb": model.IntegerValue(3)}

	got, err := e.Render("range", "{% for i in players_nb|range %}{{ i }}{% endfor %}", params)
	require.NoError(t, err)
	assert.Equal(t, "012", got)
}

func TestEngine_RenderError(t *testing.T) {
	e := newEngine(t)

	_, err := e.Render("broken.txt", "{% if %}", model.NewParameterSet())
	require.Error(t, err)

	var renderErr *Error
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "broken.txt", renderErr.Name)
}

func TestEngine_Compile(t *testing.T) {
	e := newEngine(t)

	assert.NoError(t, e.Compile("ok.txt", "{{ undefined_var }} {% if x %}y{% endif %}"))

	err := e.Compile("broken.txt", "{% for %}")
	var renderErr *Error
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "broken.txt", renderErr.Name)
}
