package cli

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/tacogips/scaffold/internal/template/model"
	"github.com/tacogips/scaffold/internal/template/params"
)

// SurveyPrompter asks for parameter values on the terminal.
type SurveyPrompter struct {
	// Stdio overrides the terminal streams. Zero means the process stdio.
	Stdio terminal.Stdio
}

// NewSurveyPrompter creates a prompter on the process stdio.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

func (s *SurveyPrompter) ask(prompt survey.Prompt, response interface{}, validators ...survey.Validator) error {
	var opts []survey.AskOpt
	if s.Stdio.In != nil {
		opts = append(opts, survey.WithStdio(s.Stdio.In, s.Stdio.Out, s.Stdio.Err))
	}
	if len(validators) > 0 {
		opts = append(opts, survey.WithValidator(survey.ComposeValidators(validators...)))
	}
	return survey.AskOne(prompt, response, opts...)
}

// String prompts for a string parameter.
func (s *SurveyPrompter) String(p params.Prompt) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: message(p),
		Default: defaultString(p.Default),
		Help:    p.Name,
	}

	var validators []survey.Validator
	if p.Required {
		validators = append(validators, survey.Required)
	}
	if err := s.ask(prompt, &result, validators...); err != nil {
		return "", err
	}
	return result, nil
}

// Integer prompts for an integer parameter.
func (s *SurveyPrompter) Integer(p params.Prompt) (int64, error) {
	var result string
	prompt := &survey.Input{
		Message: message(p),
		Default: defaultString(p.Default),
		Help:    p.Name,
	}

	if err := s.ask(prompt, &result, intValidator(p.Required)); err != nil {
		return 0, err
	}
	if result == "" {
		return 0, nil
	}
	return strconv.ParseInt(result, 10, 64)
}

// Float prompts for a floating-point parameter.
func (s *SurveyPrompter) Float(p params.Prompt) (float64, error) {
	var result string
	prompt := &survey.Input{
		Message: message(p),
		Default: defaultString(p.Default),
		Help:    p.Name,
	}

	if err := s.ask(prompt, &result, numberValidator(p.Required)); err != nil {
		return 0, err
	}
	// An empty optional answer is 0, the same as for integers.
	if result == "" {
		return 0, nil
	}
	return strconv.ParseFloat(result, 64)
}

// Boolean prompts for a yes/no parameter.
func (s *SurveyPrompter) Boolean(p params.Prompt) (bool, error) {
	var result bool
	def := false
	if b, ok := p.Default.(model.BooleanValue); ok {
		def = bool(b)
	}

	prompt := &survey.Confirm{
		Message: message(p),
		Default: def,
		Help:    p.Name,
	}
	if err := s.ask(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// Select prompts for one option and returns its index.
func (s *SurveyPrompter) Select(p params.Prompt, options []string, defaultIndex int) (int, error) {
	var result int
	prompt := &survey.Select{
		Message: message(p),
		Options: options,
		Help:    p.Name,
	}
	if defaultIndex >= 0 && defaultIndex < len(options) {
		prompt.Default = options[defaultIndex]
	}

	if err := s.ask(prompt, &result); err != nil {
		return 0, err
	}
	return result, nil
}

// MultiSelect prompts for any number of options and returns their indices.
func (s *SurveyPrompter) MultiSelect(p params.Prompt, options []string, defaults []int) ([]int, error) {
	var result []int
	prompt := &survey.MultiSelect{
		Message: message(p),
		Options: options,
		Help:    p.Name,
	}
	if len(defaults) > 0 {
		prompt.Default = defaults
	}

	var validators []survey.Validator
	if p.Required {
		validators = append(validators, survey.MinItems(1))
	}
	if err := s.ask(prompt, &result, validators...); err != nil {
		return nil, err
	}
	return result, nil
}

func message(p params.Prompt) string {
	if p.Required {
		return p.Message + " (required)"
	}
	return p.Message
}

func defaultString(v model.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func intValidator(required bool) survey.Validator {
	return func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		if str == "" {
			if required {
				return fmt.Errorf("value is required")
			}
			return nil
		}
		if _, err := strconv.ParseInt(str, 10, 64); err != nil {
			return fmt.Errorf("must be an integer")
		}
		return nil
	}
}

func numberValidator(required bool) survey.Validator {
	return func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		if str == "" {
			if required {
				return fmt.Errorf("value is required")
			}
			return nil
		}
		if _, err := strconv.ParseFloat(str, 64); err != nil {
			return fmt.Errorf("must be a number")
		}
		return nil
	}
}
