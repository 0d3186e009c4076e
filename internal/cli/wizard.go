package cli

import (
	"context"
	"fmt"

	"github.com/artisanexperiences/carebook/internal/forms"
	"github.com/artisanexperiences/carebook/internal/ui"
	"github.com/artisanexperiences/carebook/internal/validation"
	"github.com/artisanexperiences/carebook/internal/wizard"
)

// runWizard walks the user through def until the session completes or the
// user backs out of the first step. The returned outcome is Completed or Exited.
func runWizard(ctx context.Context, app *AppContext, def forms.Definition, seed validation.Values) (wizard.Outcome, error) {
	c, err := app.NewWizard(def)
	if err != nil {
		return wizard.Outcome{}, err
	}

	// draft keeps what the user typed, valid or not, so nothing is retyped.
	draft := seed.Clone()

	for {
		state := c.State()
		step, ok := def.Step(state.CurrentStep)
		if !ok {
			return wizard.Outcome{}, fmt.Errorf("form %q has no step %q", def.Name, state.CurrentStep)
		}

		prefill := draft.Clone()
		for k, v := range state.FieldValues {
			if _, typed := prefill[k]; !typed {
				prefill[k] = v
			}
		}

		entered, back, err := ui.RunStep(step, prefill)
		if err != nil {
			_ = c.Cancel()
			return wizard.Outcome{}, err
		}

		if back {
			out, err := c.GoBack()
			if err != nil {
				return wizard.Outcome{}, err
			}
			if out.Kind == wizard.OutcomeExited {
				return out, nil
			}
			continue
		}

		for k, v := range entered {
			draft[k] = v
		}

		out, err := submitStep(ctx, c, entered)
		if err != nil {
			return wizard.Outcome{}, err
		}

		switch out.Kind {
		case wizard.OutcomeInvalid:
			ui.PrintError("Please fix the highlighted fields")
			fmt.Fprintln(ui.Out, ui.RenderErrors(out.Result))
		case wizard.OutcomeFailed:
			ui.PrintErrorWithHint(reasonMessage(out.Reason), "Check your details and try again.")
		case wizard.OutcomeDuplicate:
			ui.PrintWarning("A submission is already in progress")
		case wizard.OutcomeCompleted:
			return out, nil
		}
	}
}

// submitStep submits the current step, behind a spinner when the step calls
// the gateway.
func submitStep(ctx context.Context, c *wizard.Controller, values validation.Values) (wizard.Outcome, error) {
	step := c.Current()
	if !step.Terminal() && !step.CallGateway {
		return c.SubmitCurrentStep(ctx, values)
	}

	var out wizard.Outcome
	err := ui.RunWithSpinner("Submitting...", func() error {
		var err error
		out, err = c.SubmitCurrentStep(ctx, values)
		return err
	})
	return out, err
}

// completionMessage is what the user sees after a form completes.
func completionMessage(form string, values map[string]string) string {
	switch form {
	case forms.FormLogin:
		return fmt.Sprintf("Signed in as %s", values[forms.FieldUsername])
	case forms.FormRegister:
		return "Account created"
	case forms.FormAppointment:
		return fmt.Sprintf("Appointment booked for %s at %s", values[forms.FieldDate], values[forms.FieldTimeSlot])
	case forms.FormPatientRecord:
		return "Patient record saved"
	case forms.FormForgotPassword:
		return "Password updated, you can sign in now"
	}
	return "Submitted"
}
