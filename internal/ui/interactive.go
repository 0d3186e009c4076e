package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/x/term"
)

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// IsAbort reports whether err is the user quitting a prompt.
func IsAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

// NormalizeAbort maps a prompt abort to nil so callers treat it as "no answer".
func NormalizeAbort(err error) error {
	if IsAbort(err) {
		return nil
	}
	return err
}

// RunWithSpinner runs fn behind a spinner when attached to a terminal.
func RunWithSpinner(title string, fn func() error) error {
	if !IsInteractive() {
		return fn()
	}

	var fnErr error
	if err := spinner.New().
		Title(title).
		Action(func() { fnErr = fn() }).
		Run(); err != nil {
		return err
	}
	return fnErr
}

// Choice is a labelled menu entry.
type Choice struct {
	Label string
	Value string
}

// Select asks the user to pick one choice.
func Select(title, description string, choices []Choice) (string, error) {
	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Label, c.Value)
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(description).
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", err
	}

	return selected, nil
}

// Confirm asks a yes/no question, starting from def.
func Confirm(title, description string, def bool) (bool, error) {
	confirmed := def

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
