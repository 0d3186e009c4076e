package forms

import (
	"fmt"
	"sort"

	"github.com/artisanexperiences/carebook/internal/validation"
)

// Policies selects the password composition policy per form.
type Policies struct {
	Login    validation.PasswordPolicy
	Register validation.PasswordPolicy
	Reset    validation.PasswordPolicy
}

// DefaultPolicies mirrors the screens: login demands any symbol, reset demands
// one from a fixed set, registration checks length only.
func DefaultPolicies() Policies {
	return Policies{
		Login:    validation.PolicyStandard,
		Register: validation.PolicyNone,
		Reset:    validation.PolicyStrict,
	}
}

// PoliciesByName resolves policy names into Policies.
func PoliciesByName(login, register, reset string) (Policies, error) {
	var p Policies
	var err error
	if p.Login, err = validation.LookupPolicy(login); err != nil {
		return Policies{}, fmt.Errorf("login policy: %w", err)
	}
	if p.Register, err = validation.LookupPolicy(register); err != nil {
		return Policies{}, fmt.Errorf("register policy: %w", err)
	}
	if p.Reset, err = validation.LookupPolicy(reset); err != nil {
		return Policies{}, fmt.Errorf("reset policy: %w", err)
	}
	return p, nil
}

type Factory func(p Policies) Definition

var registry = make(map[string]Factory)

func Register(name string, factory Factory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("form %q already registered", name))
	}
	registry[name] = factory
}

func Create(name string, p Policies) (Definition, error) {
	if factory, ok := registry[name]; ok {
		return factory(p), nil
	}
	return Definition{}, fmt.Errorf("unknown form %q (available: %v)", name, ListRegistered())
}

func ListRegistered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(FormLogin, Login)
	Register(FormRegister, Registration)
	Register(FormAppointment, Appointment)
	Register(FormPatientRecord, PatientRecord)
	Register(FormForgotPassword, ForgotPassword)
}
