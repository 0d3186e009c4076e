package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/carebook/internal/config"
	"github.com/artisanexperiences/carebook/internal/credentials"
	"github.com/artisanexperiences/carebook/internal/forms"
	"github.com/artisanexperiences/carebook/internal/ui"
	"github.com/artisanexperiences/carebook/internal/validation"
	"github.com/artisanexperiences/carebook/internal/wizard"
)

// formCommand builds the interactive command for one form.
func formCommand(use, short, form string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noInteractive || !ui.IsInteractive() {
				return withExitCode(config.ExitInvalidArguments,
					fmt.Errorf("%s needs a terminal; use 'carebook submit %s' instead", use, form))
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return runForm(cmd.Context(), app, form, false)
		},
	}
}

// runForm runs one form interactively and reports the result. The credential
// store lives as long as the process, so remember-me is only offered when
// another form can follow in the same run.
func runForm(ctx context.Context, app *AppContext, form string, offerRemember bool) error {
	def, err := app.Form(form)
	if err != nil {
		return err
	}

	seed := validation.Values{}
	if form == forms.FormLogin {
		saved, ok, err := credentials.Load(app.Store)
		if err != nil {
			app.Logger.Warn("ignoring saved credentials", "err", err)
		} else if ok {
			seed[forms.FieldUsername] = saved.Username
			seed[forms.FieldPassword] = saved.Password
		}
	}

	out, err := runWizard(ctx, app, def, seed)
	if err != nil {
		return err
	}
	if out.Kind == wizard.OutcomeExited {
		ui.PrintInfo("Cancelled.")
		return nil
	}

	if form == forms.FormLogin && offerRemember {
		if err := rememberLogin(app, out.Values); err != nil {
			return err
		}
	}

	ui.PrintSuccess(completionMessage(form, out.Values))
	return nil
}

func rememberLogin(app *AppContext, values map[string]string) error {
	_, remembered, _ := credentials.Load(app.Store)
	keep, err := ui.Confirm("Remember me?", "Fill in these credentials for the next sign-in in this session", remembered)
	if err != nil {
		return ui.NormalizeAbort(err)
	}
	return credentials.Apply(app.Store, keep, values[forms.FieldUsername], values[forms.FieldPassword])
}

var menuChoices = []ui.Choice{
	{Label: "Sign in", Value: forms.FormLogin},
	{Label: "Create account", Value: forms.FormRegister},
	{Label: "Book appointment", Value: forms.FormAppointment},
	{Label: "Edit patient record", Value: forms.FormPatientRecord},
	{Label: "Forgot password", Value: forms.FormForgotPassword},
	{Label: "Quit", Value: ""},
}

// runMenu loops over form selection until the user quits.
func runMenu(ctx context.Context, app *AppContext) error {
	for {
		choice, err := ui.Select("What would you like to do?", "", menuChoices)
		if err != nil {
			return ui.NormalizeAbort(err)
		}
		if choice == "" {
			return nil
		}

		if err := runForm(ctx, app, choice, true); err != nil {
			if ui.IsAbort(err) {
				continue
			}
			return err
		}
	}
}

func init() {
	rootCmd.AddCommand(
		formCommand("login", "Sign in to your account", forms.FormLogin),
		formCommand("register", "Create an account", forms.FormRegister),
		formCommand("book", "Book an appointment", forms.FormAppointment),
		formCommand("record", "Edit a patient record", forms.FormPatientRecord),
		formCommand("reset-password", "Reset a forgotten password", forms.FormForgotPassword),
	)
}
