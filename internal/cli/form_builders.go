package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/matlog/internal/cli/formatter"
	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errAborted = errors.New("aborted")

// matlogHuhTheme returns a custom huh theme using the formatter palette.
func matlogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// moveForm collects the fields of a new move. Fields already filled in by
// flags are shown with their values.
func moveForm(plan, name, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan").
				Placeholder("Guard Passing").
				Value(plan).
				Validate(func(s string) error {
					return domain.ValidatePlanName(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Move").
				Placeholder("Knee Slice").
				Value(name).
				Validate(func(s string) error {
					return domain.ValidateMoveName(strings.TrimSpace(s))
				}),
			huh.NewText().
				Title("Notes (markdown, optional)").
				Value(description).
				Validate(func(s string) error {
					return domain.ValidateDescription(&s)
				}),
		),
	).WithTheme(matlogHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question defaulting to no.
func confirmForm(title string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Keep").
				Value(ok),
		),
	).WithTheme(matlogHuhTheme()).WithShowHelp(false)
}

// confirmDelete gates destructive commands: --yes proceeds, a terminal gets
// a prompt, anything else is refused.
func confirmDelete(app *App, yes bool, title string) error {
	if yes {
		return nil
	}
	if !app.interactive() {
		return errors.New("refusing to delete without --yes")
	}
	var ok bool
	if err := confirmForm(title, &ok).Run(); err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}
