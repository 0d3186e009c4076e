// Package validation provides declarative field and form validation.
// Rules are composed per field, fields are composed per form, and a form
// validates a snapshot of raw text values into an immutable Result.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Values is a snapshot of raw field input keyed by field name.
type Values map[string]string

// Get returns the value for name, treating an absent key as empty.
func (v Values) Get(name string) string {
	return v[name]
}

// Clone returns an independent copy of the snapshot.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Rule is a single pass/fail check with a user-facing message.
type Rule interface {
	// Passes reports whether value satisfies the rule. values holds the whole
	// form snapshot so that cross-field rules can read siblings.
	Passes(value string, values Values) bool

	// Message is reported when the rule fails.
	Message() string
}

// FieldValidator applies an ordered list of rules to one named field.
type FieldValidator struct {
	Name  string
	Rules []Rule
}

// NewField creates a FieldValidator for name with the given rules.
func NewField(name string, rules ...Rule) *FieldValidator {
	return &FieldValidator{
		Name:  name,
		Rules: append(make([]Rule, 0, len(rules)), rules...),
	}
}

// AddRule appends a rule to the field.
func (f *FieldValidator) AddRule(rule Rule) *FieldValidator {
	f.Rules = append(f.Rules, rule)
	return f
}

// Validate evaluates the rules in declaration order against the field's value
// in values and returns the message of the first failing rule, or "" when all
// rules pass.
func (f *FieldValidator) Validate(values Values) string {
	value := values.Get(f.Name)
	for _, rule := range f.Rules {
		if !rule.Passes(value, values) {
			return rule.Message()
		}
	}
	return ""
}

// ValidateValue validates a lone value. Cross-field rules see only this field.
func (f *FieldValidator) ValidateValue(value string) string {
	return f.Validate(Values{f.Name: value})
}

// RuleCount returns the number of rules on the field.
func (f *FieldValidator) RuleCount() int {
	return len(f.Rules)
}

// FormValidator validates a fixed set of named fields together.
type FormValidator struct {
	name   string
	order  []string
	fields map[string]*FieldValidator
}

// NewForm creates an empty FormValidator.
func NewForm(name string) *FormValidator {
	return &FormValidator{
		name:   name,
		fields: make(map[string]*FieldValidator),
	}
}

// AddField registers a field validator. Field names are unique within a form;
// registering a name twice panics because it is a definition error.
func (v *FormValidator) AddField(field *FieldValidator) *FormValidator {
	if _, exists := v.fields[field.Name]; exists {
		panic(fmt.Sprintf("form %q: field %q already registered", v.name, field.Name))
	}
	v.fields[field.Name] = field
	v.order = append(v.order, field.Name)
	return v
}

// Name returns the form name.
func (v *FormValidator) Name() string {
	return v.name
}

// Fields returns the registered field names in registration order.
func (v *FormValidator) Fields() []string {
	return append([]string(nil), v.order...)
}

// Has reports whether the form owns a field called name.
func (v *FormValidator) Has(name string) bool {
	_, ok := v.fields[name]
	return ok
}

// Field returns the validator for name, or an UnknownField error.
func (v *FormValidator) Field(name string) (*FieldValidator, error) {
	if f, ok := v.fields[name]; ok {
		return f, nil
	}
	return nil, unknownFieldError(v.name, []string{name})
}

// CheckFields returns an UnknownField error naming every key of values that the
// form does not own.
func (v *FormValidator) CheckFields(values Values) error {
	var unknown []string
	for name := range values {
		if !v.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return unknownFieldError(v.name, unknown)
}

// Validate runs every registered field against values. Absent keys are treated
// as empty strings. Keys the form does not own are ignored; use ValidateStrict
// or CheckFields to reject them. Validation failures are reported in the
// Result, never as an error.
func (v *FormValidator) Validate(values Values) Result {
	errs := make(map[string]string)
	for _, name := range v.order {
		if msg := v.fields[name].Validate(values); msg != "" {
			errs[name] = msg
		}
	}
	return Result{errors: errs}
}

// ValidateStrict rejects values carrying unknown field names before validating.
func (v *FormValidator) ValidateStrict(values Values) (Result, error) {
	if err := v.CheckFields(values); err != nil {
		return Result{}, err
	}
	return v.Validate(values), nil
}

// Result is the immutable outcome of a form validation pass.
type Result struct {
	errors map[string]string
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns a copy of the field -> message mapping.
func (r Result) Errors() map[string]string {
	out := make(map[string]string, len(r.errors))
	for k, v := range r.errors {
		out[k] = v
	}
	return out
}

// Error returns the message for field, if it failed.
func (r Result) Error(field string) (string, bool) {
	msg, ok := r.errors[field]
	return msg, ok
}

// Failed returns the names of failing fields in sorted order.
func (r Result) Failed() []string {
	names := make([]string, 0, len(r.errors))
	for name := range r.errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Result) String() string {
	if r.Valid() {
		return "valid"
	}
	parts := make([]string, 0, len(r.errors))
	for _, name := range r.Failed() {
		parts = append(parts, fmt.Sprintf("%s: %s", name, r.errors[name]))
	}
	return strings.Join(parts, "; ")
}
