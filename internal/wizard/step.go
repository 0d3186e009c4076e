package wizard

import (
	"context"
	"fmt"

	"github.com/artisanexperiences/carebook/internal/validation"
)

// Transition sentinels.
const (
	// Submit as OnSuccess marks a terminal step that hands the accumulated
	// values to the Gateway.
	Submit = "submit"
	// Exit as OnBack ends the session when the user backs out.
	Exit = "exit"
)

// Step is one gated form in a wizard.
type Step struct {
	ID        string
	Validator *validation.FormValidator
	// OnSuccess is the next step id, or Submit.
	OnSuccess string
	// OnBack is the previous step id, or Exit.
	OnBack string
	// CallGateway makes a non-terminal step invoke the Gateway before
	// advancing, e.g. "send code" or "verify code".
	CallGateway bool
}

// Terminal reports whether completing the step submits the session.
func (s Step) Terminal() bool {
	return s.OnSuccess == Submit
}

func (s Step) needsGateway() bool {
	return s.Terminal() || s.CallGateway
}

// Gateway performs the backend operation a completed step triggers.
type Gateway interface {
	Submit(ctx context.Context, stepID string, fields map[string]string) error
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, stepID string, fields map[string]string) error

func (f GatewayFunc) Submit(ctx context.Context, stepID string, fields map[string]string) error {
	return f(ctx, stepID, fields)
}

func validateSteps(steps []Step, gateway Gateway) error {
	if len(steps) == 0 {
		return definitionError("wizard has no steps")
	}

	ids := make(map[string]bool, len(steps))
	for _, s := range steps {
		switch {
		case s.ID == "":
			return definitionError("step id is required")
		case s.ID == Submit || s.ID == Exit:
			return definitionError(fmt.Sprintf("step id %q is reserved", s.ID))
		case ids[s.ID]:
			return definitionError(fmt.Sprintf("step %q defined twice", s.ID))
		case s.Validator == nil:
			return definitionError(fmt.Sprintf("step %q has no validator", s.ID))
		}
		ids[s.ID] = true
	}

	needsGateway := false
	for _, s := range steps {
		if s.OnSuccess != Submit && !ids[s.OnSuccess] {
			return definitionError(fmt.Sprintf("step %q: success target %q is not a step", s.ID, s.OnSuccess))
		}
		if s.OnBack != Exit && !ids[s.OnBack] {
			return definitionError(fmt.Sprintf("step %q: back target %q is not a step", s.ID, s.OnBack))
		}
		needsGateway = needsGateway || s.needsGateway()
	}

	if needsGateway && gateway == nil {
		return definitionError("a gateway is required for submitting steps")
	}
	return nil
}
