package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/artisanexperiences/carebook/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "carebook",
	Short: "Patient sign-in, registration and appointment booking",
	Long: `Carebook collects patient details through validated forms:
sign in, create an account, book an appointment, edit a patient
record and reset a forgotten password.

Run without a command on a terminal to open the interactive menu.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColor()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if noInteractive || !ui.IsInteractive() {
			return cmd.Help()
		}
		printBanner()

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return runMenu(cmd.Context(), app)
	},
}

var (
	noColor       bool
	noInteractive bool
)

func printBanner() {
	word := "CAREBOOK"
	colors := []lipgloss.Color{
		lipgloss.Color("#BAE6FD"),
		lipgloss.Color("#7DD3FC"),
		lipgloss.Color("#38BDF8"),
		lipgloss.Color("#0EA5E9"),
		lipgloss.Color("#0284C7"),
		lipgloss.Color("#0369A1"),
		lipgloss.Color("#075985"),
		lipgloss.Color("#0C4A6E"),
	}

	var letters []string
	for i, r := range word {
		style := lipgloss.NewStyle().
			Foreground(colors[i%len(colors)]).
			Bold(true).
			PaddingRight(1)
		letters = append(letters, style.Render(string(r)))
	}
	fmt.Println(ui.BoxStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, letters...)))

	versionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginBottom(1)

	fmt.Println(versionStyle.Render(fmt.Sprintf("Version %s (commit: %s, built: %s)", Version, Commit, BuildDate)))
	fmt.Println(subtitleStyle.Render("Esc goes back a step, ctrl+c leaves the menu."))
}

// loadApp builds the process-wide AppContext on first use.
func loadApp(cmd *cobra.Command) (*AppContext, error) {
	appOnce.Do(func() {
		app, appErr = NewAppContext(mustGetString(cmd, "config"), mustGetString(cmd, "log-level"), os.Stderr)
	})
	return app, appErr
}

func Execute() error {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if ui.IsAbort(err) {
			return nil
		}
		ui.PrintError(strings.TrimSpace(err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to carebook.yaml (default: ./carebook.yaml, then the global config)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noInteractive, "no-interactive", false, "Disable interactive prompts")
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}
