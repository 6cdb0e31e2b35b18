package params

import (
	"errors"
	"fmt"

	"github.com/tacogips/scaffold/internal/template/model"
)

// Prompt describes one question asked to the user.
type Prompt struct {
	// Name is the parameter name.
	Name string
	// Message is the question text.
	Message string
	// Required rejects empty answers.
	Required bool
	// Default is the suggested answer. May be nil.
	Default model.Value
}

// Prompter obtains typed values from a human.
type Prompter interface {
	String(p Prompt) (string, error)
	Integer(p Prompt) (int64, error)
	Float(p Prompt) (float64, error)
	Boolean(p Prompt) (bool, error)
	// Select returns the index of the chosen option.
	Select(p Prompt, options []string, defaultIndex int) (int, error)
	// MultiSelect returns the indices of the chosen options.
	MultiSelect(p Prompt, options []string, defaults []int) ([]int, error)
}

// ErrNoDefault is returned by NonInteractivePrompter for a required
// parameter that has no default.
var ErrNoDefault = errors.New("no default value and input is disabled")

// NonInteractivePrompter answers every prompt with its default.
type NonInteractivePrompter struct{}

func (NonInteractivePrompter) String(p Prompt) (string, error) {
	if p.Default == nil {
		if p.Required {
			return "", ErrNoDefault
		}
		return "", nil
	}
	return p.Default.String(), nil
}

func (NonInteractivePrompter) Integer(p Prompt) (int64, error) {
	switch v := p.Default.(type) {
	case model.IntegerValue:
		return int64(v), nil
	case nil:
		if p.Required {
			return 0, ErrNoDefault
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("default %v is not an integer", v)
	}
}

func (NonInteractivePrompter) Float(p Prompt) (float64, error) {
	switch v := p.Default.(type) {
	case model.FloatValue:
		return float64(v), nil
	case model.IntegerValue:
		return float64(v), nil
	case nil:
		if p.Required {
			return 0, ErrNoDefault
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("default %v is not a number", v)
	}
}

func (NonInteractivePrompter) Boolean(p Prompt) (bool, error) {
	switch v := p.Default.(type) {
	case model.BooleanValue:
		return bool(v), nil
	case nil:
		if p.Required {
			return false, ErrNoDefault
		}
		return false, nil
	default:
		return false, fmt.Errorf("default %v is not a boolean", v)
	}
}

func (NonInteractivePrompter) Select(_ Prompt, _ []string, defaultIndex int) (int, error) {
	return defaultIndex, nil
}

func (NonInteractivePrompter) MultiSelect(_ Prompt, _ []string, defaults []int) ([]int, error) {
	return defaults, nil
}
