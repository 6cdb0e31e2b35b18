package render

import (
	"github.com/flosch/pongo2/v6"
)

func registerFilters() {
	if !pongo2.FilterExists("range") {
		_ = pongo2.RegisterFilter("range", filterRange)
	}
}

// filterRange turns an integer n into the sequence 0..n-1 so templates can
// loop a parameter-driven number of times: {% for i in count|range %}.
func filterRange(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if !in.IsInteger() {
		if in.IsNil() {
			return pongo2.AsValue([]int{}), nil
		}
		return nil, &pongo2.Error{
			Sender:    "filter:range",
			OrigError: errNotInteger,
		}
	}
	n := in.Integer()
	if n < 0 {
		n = 0
	}
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return pongo2.AsValue(seq), nil
}
