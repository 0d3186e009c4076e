package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/artisanexperiences/carebook/internal/forms"
	"github.com/artisanexperiences/carebook/internal/validation"
)

// notSpecified is the empty choice offered by optional selects.
const notSpecified = "Not specified"

// stepInputs holds the live values bound to a step's inputs.
type stepInputs struct {
	order  []string
	values map[string]*string
}

func newStepInputs(step forms.StepSpec, seed validation.Values) *stepInputs {
	in := &stepInputs{values: make(map[string]*string, len(step.Fields))}
	for _, f := range step.Fields {
		v := seed.Get(f.Name)
		in.order = append(in.order, f.Name)
		in.values[f.Name] = &v
	}
	return in
}

func (in *stepInputs) snapshot() validation.Values {
	out := make(validation.Values, len(in.values))
	for name, v := range in.values {
		out[name] = *v
	}
	return out
}

// validator adapts a field validator to huh. Cross-field rules see the other
// inputs as they currently stand.
func (in *stepInputs) validator(field *validation.FieldValidator) func(string) error {
	return func(value string) error {
		values := in.snapshot()
		values[field.Name] = value
		if msg := field.Validate(values); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func selectOptions(f forms.Field) []huh.Option[string] {
	var options []huh.Option[string]
	if !f.Required() {
		options = append(options, huh.NewOption(notSpecified, ""))
	}
	for _, o := range f.Options {
		options = append(options, huh.NewOption(o.Label, o.Value))
	}
	return options
}

func (in *stepInputs) fields(step forms.StepSpec) []huh.Field {
	form := step.Validator()
	fields := make([]huh.Field, 0, len(step.Fields))

	for _, f := range step.Fields {
		fv, _ := form.Field(f.Name)
		value := in.values[f.Name]

		if len(f.Options) > 0 {
			fields = append(fields, huh.NewSelect[string]().
				Key(f.Name).
				Title(f.Title).
				Options(selectOptions(f)...).
				Value(value).
				Validate(in.validator(fv)))
			continue
		}

		input := huh.NewInput().
			Key(f.Name).
			Title(f.Title).
			Placeholder(f.Placeholder).
			Value(value).
			Validate(in.validator(fv))
		if f.Secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		fields = append(fields, input)
	}

	return fields
}

// RunStep renders step as a form seeded with seed and returns what the user
// entered. Leaving the form with esc or ctrl+c reports back instead.
func RunStep(step forms.StepSpec, seed validation.Values) (values validation.Values, back bool, err error) {
	in := newStepInputs(step, seed)

	keymap := huh.NewDefaultKeyMap()
	keymap.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "back"))

	form := huh.NewForm(
		huh.NewGroup(in.fields(step)...).
			Title(step.Title).
			Description(step.Description),
	).
		WithTheme(huh.ThemeCatppuccin()).
		WithKeyMap(keymap).
		WithShowHelp(true)

	if err := form.Run(); err != nil {
		if IsAbort(err) {
			return nil, true, nil
		}
		return nil, false, err
	}

	return in.snapshot(), false, nil
}
