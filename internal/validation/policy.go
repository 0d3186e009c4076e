package validation

import (
	"fmt"
	"sort"
	"strings"
)

// PasswordPolicy describes the character classes a password must contain.
// The login and reset screens enforce different policies and registration
// enforces none, so forms pick one per instance instead of sharing a global.
type PasswordPolicy struct {
	Name         string
	RequireUpper bool
	RequireLower bool
	RequireDigit bool
	// RequireSymbol demands at least one character that is not an ASCII letter or digit.
	RequireSymbol bool
	// Symbols narrows what counts as a symbol. Empty means any non-alphanumeric.
	Symbols string
	// Restrict rejects any character outside letters, digits and Symbols.
	Restrict bool
}

var (
	PolicyNone = PasswordPolicy{Name: "none"}

	PolicyStandard = PasswordPolicy{
		Name:          "standard",
		RequireUpper:  true,
		RequireLower:  true,
		RequireDigit:  true,
		RequireSymbol: true,
	}

	PolicyStrict = PasswordPolicy{
		Name:          "strict",
		RequireUpper:  true,
		RequireLower:  true,
		RequireDigit:  true,
		RequireSymbol: true,
		Symbols:       "@$!%?&",
		Restrict:      true,
	}
)

var policies = map[string]PasswordPolicy{
	PolicyNone.Name:     PolicyNone,
	PolicyStandard.Name: PolicyStandard,
	PolicyStrict.Name:   PolicyStrict,
}

// LookupPolicy returns the named policy.
func LookupPolicy(name string) (PasswordPolicy, error) {
	if p, ok := policies[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return PasswordPolicy{}, fmt.Errorf("unknown password policy %q (available: %v)", name, PolicyNames())
}

// PolicyNames lists the known policy names in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enabled reports whether the policy demands anything at all.
func (p PasswordPolicy) Enabled() bool {
	return p.RequireUpper || p.RequireLower || p.RequireDigit || p.RequireSymbol || p.Restrict
}

// Satisfied reports whether s meets every requirement of the policy.
func (p PasswordPolicy) Satisfied(s string) bool {
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case p.Symbols == "" || strings.ContainsRune(p.Symbols, r):
			symbol = true
		default:
			if p.Restrict {
				return false
			}
		}
	}

	if p.RequireUpper && !upper {
		return false
	}
	if p.RequireLower && !lower {
		return false
	}
	if p.RequireDigit && !digit {
		return false
	}
	if p.RequireSymbol && !symbol {
		return false
	}
	return true
}
