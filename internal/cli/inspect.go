package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/carebook/internal/config"
	"github.com/artisanexperiences/carebook/internal/forms"
	"github.com/artisanexperiences/carebook/internal/ui"
	"github.com/artisanexperiences/carebook/internal/validation"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the available forms",
	Long:  `List every form with its steps, fields and where each step leads.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable(
			[]string{"FORM", "STEP", "FIELDS", "NEXT", "BACK"},
			formRows(app.Policies),
		))
		return nil
	},
}

func formRows(p forms.Policies) [][]string {
	var rows [][]string
	for _, name := range forms.ListRegistered() {
		def, _ := forms.Create(name, p)
		for _, step := range def.Steps {
			rows = append(rows, []string{
				def.Name,
				step.ID,
				strings.Join(fieldLabels(step), ", "),
				step.OnSuccess,
				step.OnBack,
			})
		}
	}
	return rows
}

func fieldLabels(step forms.StepSpec) []string {
	labels := make([]string, len(step.Fields))
	for i, f := range step.Fields {
		labels[i] = f.Name
		if f.Required() {
			labels[i] += "*"
		}
	}
	return labels
}

var validateCmd = &cobra.Command{
	Use:   "validate FORM",
	Short: "Validate values against a form step",
	Long: `Validate values against one step of a form without submitting anything.

Values come from a YAML file (--values) and/or --set pairs. Exits with
status 3 when validation fails.`,
	Example: `  carebook validate login --set username=jane_99 --set password='Secret1!'
  carebook validate forgot-password --step forgot-code --set verificationCode=123456`,
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

		result, err := validateStep(def, mustGetString(cmd, "step"), values)
		if err != nil {
			return err
		}
		if !result.Valid() {
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderErrors(result))
			return withExitCode(config.ExitValidationFailed, fmt.Errorf("%s: %d field(s) invalid", def.Name, len(result.Failed())))
		}

		ui.PrintSuccess(fmt.Sprintf("%s is valid", def.Name))
		return nil
	},
}

// validateStep validates values against stepID, or the first step when empty.
func validateStep(def forms.Definition, stepID string, values validation.Values) (validation.Result, error) {
	step := def.Steps[0]
	if stepID != "" {
		var ok bool
		if step, ok = def.Step(stepID); !ok {
			ids := make([]string, len(def.Steps))
			for i, s := range def.Steps {
				ids[i] = s.ID
			}
			return validation.Result{}, withExitCode(config.ExitInvalidArguments,
				fmt.Errorf("form %q has no step %q (available: %v)", def.Name, stepID, ids))
		}
	}

	result, err := step.Validator().ValidateStrict(values)
	if err != nil {
		return validation.Result{}, withExitCode(config.ExitInvalidArguments, err)
	}
	return result, nil
}

func init() {
	validateCmd.Flags().String("step", "", "Step to validate (default: the first step)")
	validateCmd.Flags().String("values", "", "YAML file of field values")
	validateCmd.Flags().StringToString("set", nil, "Field value as name=value (repeatable)")

	rootCmd.AddCommand(formsCmd, validateCmd)
}
