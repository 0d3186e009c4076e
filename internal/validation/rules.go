package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Patterns shared by the screens that collect contact details and account names.
const (
	EmailPattern    = `[^\s@]+@[^\s@]+\.[^\s@]+`
	PhonePattern    = `\+?[\d\s-]{10,}`
	UsernamePattern = `[a-zA-Z0-9_]+`
	DigitsPattern   = `[0-9]*`
)

// RequiredRule fails when the value is empty after trimming surrounding whitespace.
type RequiredRule struct {
	Msg string
}

// Required returns a rule that rejects blank values.
func Required(msg string) Rule {
	return RequiredRule{Msg: msg}
}

func (r RequiredRule) Message() string { return r.Msg }

func (r RequiredRule) Passes(value string, _ Values) bool {
	return strings.TrimSpace(value) != ""
}

// MinLengthRule fails when the trimmed value has fewer than Min characters.
type MinLengthRule struct {
	Min int
	Msg string
}

// MinLength returns a rule that rejects values shorter than n characters.
func MinLength(n int, msg string) Rule {
	return MinLengthRule{Min: n, Msg: msg}
}

func (r MinLengthRule) Message() string { return r.Msg }

func (r MinLengthRule) Passes(value string, _ Values) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= r.Min
}

// ExactLengthRule fails when the trimmed value does not have exactly Length characters.
type ExactLengthRule struct {
	Length int
	Msg    string
}

// ExactLength returns a rule that accepts only values of exactly n characters.
func ExactLength(n int, msg string) Rule {
	return ExactLengthRule{Length: n, Msg: msg}
}

func (r ExactLengthRule) Message() string { return r.Msg }

func (r ExactLengthRule) Passes(value string, _ Values) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) == r.Length
}

// PatternRule fails when the value does not fully match Expr.
type PatternRule struct {
	Expr *regexp.Regexp
	Msg  string
}

// Pattern compiles expr anchored at both ends so that only full matches pass.
// It panics on an invalid expression; form definitions are static.
func Pattern(expr, msg string) Rule {
	return PatternRule{
		Expr: regexp.MustCompile(`^(?:` + expr + `)$`),
		Msg:  msg,
	}
}

func (r PatternRule) Message() string { return r.Msg }

func (r PatternRule) Passes(value string, _ Values) bool {
	return r.Expr.MatchString(value)
}

// EqualsFieldRule fails when the value differs from the current value of Other.
type EqualsFieldRule struct {
	Other string
	Msg   string
}

// EqualsField returns a rule that compares the value with a sibling field.
func EqualsField(other, msg string) Rule {
	return EqualsFieldRule{Other: other, Msg: msg}
}

func (r EqualsFieldRule) Message() string { return r.Msg }

func (r EqualsFieldRule) Passes(value string, values Values) bool {
	return value == values.Get(r.Other)
}

// OneOfRule fails when a non-empty value is not in Allowed.
type OneOfRule struct {
	Allowed []string
	Msg     string
}

// OneOf returns a rule restricting the value to a fixed set. Empty is considered
// valid; combine with Required when a choice is mandatory.
func OneOf(allowed []string, msg string) Rule {
	return OneOfRule{Allowed: allowed, Msg: msg}
}

func (r OneOfRule) Message() string { return r.Msg }

func (r OneOfRule) Passes(value string, _ Values) bool {
	if value == "" {
		return true
	}
	for _, allowed := range r.Allowed {
		if value == allowed {
			return true
		}
	}
	return false
}

// DateRule fails when a non-empty value cannot be parsed with Layout.
type DateRule struct {
	Layout string
	Msg    string
}

// Date returns a rule accepting values in the given time layout. Empty is
// considered valid.
func Date(layout, msg string) Rule {
	return DateRule{Layout: layout, Msg: msg}
}

func (r DateRule) Message() string { return r.Msg }

func (r DateRule) Passes(value string, _ Values) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	_, err := time.Parse(r.Layout, value)
	return err == nil
}

// CompositionRule fails when the value does not satisfy Policy.
type CompositionRule struct {
	Policy PasswordPolicy
	Msg    string
}

// Composition returns a rule enforcing a password character policy.
func Composition(policy PasswordPolicy, msg string) Rule {
	return CompositionRule{Policy: policy, Msg: msg}
}

func (r CompositionRule) Message() string { return r.Msg }

func (r CompositionRule) Passes(value string, _ Values) bool {
	return r.Policy.Satisfied(value)
}

// CustomRule allows defining a rule using a function.
type CustomRule struct {
	Name string
	Fn   func(value string, values Values) bool
	Msg  string
}

func (r CustomRule) Message() string { return r.Msg }

func (r CustomRule) Passes(value string, values Values) bool {
	return r.Fn(value, values)
}

// OptionalRule skips Rule when the trimmed value is empty.
type OptionalRule struct {
	Rule Rule
}

// Optional wraps r so that blank values pass.
func Optional(r Rule) Rule {
	return OptionalRule{Rule: r}
}

func (r OptionalRule) Message() string { return r.Rule.Message() }

func (r OptionalRule) Passes(value string, values Values) bool {
	if strings.TrimSpace(value) == "" {
		return true
	}
	return r.Rule.Passes(value, values)
}
