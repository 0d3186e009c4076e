package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/carebook/internal/config"
	"github.com/artisanexperiences/carebook/internal/forms"
	"github.com/artisanexperiences/carebook/internal/ui"
	"github.com/artisanexperiences/carebook/internal/validation"
	"github.com/artisanexperiences/carebook/internal/wizard"
)

var submitCmd = &cobra.Command{
	Use:   "submit FORM",
	Short: "Fill and submit a form without prompts",
	Long: `Run every step of a form with the given values and submit it to the
simulated backend.

Values for all steps are given at once; each step takes the fields it owns.
Exits with status 3 when a step fails validation and 4 when the backend
rejects a submission.`,
	Example: `  carebook submit login --set username=demo_user --set password='Demo123!'
  carebook submit appointment --values booking.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		def, err := app.Form(args[0])
		if err != nil {
			return err
		}

		sets, _ := cmd.Flags().GetStringToString("set")
		values, err := readValues(mustGetString(cmd, "values"), sets)
		if err != nil {
			return err
		}

		out, err := submitScripted(cmd.Context(), app, def, values, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		ui.PrintSuccess(completionMessage(def.Name, out.Values))
		return nil
	},
}

// submitScripted drives a session through every step of def, handing each step
// the subset of values it owns. Progress lines go to w.
func submitScripted(ctx context.Context, app *AppContext, def forms.Definition, values validation.Values, w io.Writer) (wizard.Outcome, error) {
	if err := checkScriptedFields(def, values); err != nil {
		return wizard.Outcome{}, err
	}

	c, err := app.NewWizard(def)
	if err != nil {
		return wizard.Outcome{}, err
	}

	// A linear form visits each step once; anything more is a loop in the graph.
	for range 2 * len(def.Steps) {
		current := c.Current()
		stepValues := validation.Values{}
		for _, name := range current.Validator.Fields() {
			if v, ok := values[name]; ok {
				stepValues[name] = v
			}
		}

		out, err := c.SubmitCurrentStep(ctx, stepValues)
		if err != nil {
			return out, err
		}

		switch out.Kind {
		case wizard.OutcomeAdvanced:
			fmt.Fprintf(w, "%s: ok\n", out.From)
		case wizard.OutcomeCompleted:
			fmt.Fprintf(w, "%s: submitted\n", out.From)
			return out, nil
		case wizard.OutcomeInvalid:
			fmt.Fprintln(w, ui.RenderErrors(out.Result))
			return out, withExitCode(config.ExitValidationFailed,
				fmt.Errorf("step %s: %d field(s) invalid", out.From, len(out.Result.Failed())))
		case wizard.OutcomeFailed:
			return out, withExitCode(config.ExitSubmissionFailed,
				fmt.Errorf("step %s: %s", out.From, reasonMessage(out.Reason)))
		default:
			return out, fmt.Errorf("step %s: unexpected outcome %s", out.From, out.Kind)
		}
	}

	_ = c.Cancel()
	return wizard.Outcome{}, fmt.Errorf("form %q did not complete after %d steps", def.Name, 2*len(def.Steps))
}

// checkScriptedFields rejects names no step of def owns.
func checkScriptedFields(def forms.Definition, values validation.Values) error {
	all := validation.NewForm(def.Name)
	for _, step := range def.Steps {
		for _, name := range step.FieldNames() {
			if !all.Has(name) {
				all.AddField(validation.NewField(name))
			}
		}
	}
	if err := all.CheckFields(values); err != nil {
		return withExitCode(config.ExitInvalidArguments, err)
	}
	return nil
}

func init() {
	submitCmd.Flags().String("values", "", "YAML file of field values")
	submitCmd.Flags().StringToString("set", nil, "Field value as name=value (repeatable)")

	rootCmd.AddCommand(submitCmd)
}
