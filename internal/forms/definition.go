// Package forms declares the app's forms: which fields each screen collects,
// the rules guarding them, and how multi-step flows chain together.
package forms

import (
	"github.com/artisanexperiences/carebook/internal/validation"
	"github.com/artisanexperiences/carebook/internal/wizard"
)

// Option is a selectable choice for a field.
type Option struct {
	Label string
	Value string
}

// Field describes one input and its rules.
type Field struct {
	Name        string
	Title       string
	Placeholder string
	Secret      bool
	Options     []Option
	Rules       []validation.Rule
}

// Required reports whether the field rejects blank input.
func (f Field) Required() bool {
	for _, r := range f.Rules {
		if _, ok := r.(validation.RequiredRule); ok {
			return true
		}
	}
	return false
}

// StepSpec describes one screen of a form.
type StepSpec struct {
	ID          string
	Title       string
	Description string
	Fields      []Field
	OnSuccess   string
	OnBack      string
	CallGateway bool
}

// Validator builds the FormValidator for the step.
func (s StepSpec) Validator() *validation.FormValidator {
	v := validation.NewForm(s.ID)
	for _, f := range s.Fields {
		v.AddField(validation.NewField(f.Name, f.Rules...))
	}
	return v
}

// FieldNames returns the step's field names in display order.
func (s StepSpec) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Definition is a named form made of one or more steps.
type Definition struct {
	Name        string
	Title       string
	Description string
	Steps       []StepSpec
}

// Step returns the step with the given id.
func (d Definition) Step(id string) (StepSpec, bool) {
	for _, s := range d.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return StepSpec{}, false
}

// WizardSteps converts the definition into wizard steps.
func (d Definition) WizardSteps() []wizard.Step {
	steps := make([]wizard.Step, len(d.Steps))
	for i, s := range d.Steps {
		steps[i] = wizard.Step{
			ID:          s.ID,
			Validator:   s.Validator(),
			OnSuccess:   s.OnSuccess,
			OnBack:      s.OnBack,
			CallGateway: s.CallGateway,
		}
	}
	return steps
}

// NewWizard starts a wizard session for the definition.
func (d Definition) NewWizard(gateway wizard.Gateway, opts ...wizard.Option) (*wizard.Controller, error) {
	return wizard.New(d.WizardSteps(), gateway, opts...)
}

// singleStep wraps fields as the degenerate one-step wizard.
func singleStep(id, title string, fields ...Field) StepSpec {
	return StepSpec{
		ID:        id,
		Title:     title,
		Fields:    fields,
		OnSuccess: wizard.Submit,
		OnBack:    wizard.Exit,
	}
}

func optionValues(opts []Option) []string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

func plainOptions(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: v, Value: v}
	}
	return opts
}

func passwordRules(policy validation.PasswordPolicy, composition string, rules ...validation.Rule) []validation.Rule {
	if policy.Enabled() {
		rules = append(rules, validation.Composition(policy, composition))
	}
	return rules
}
