package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	activeSymbol   = "◆"
	completeSymbol = "◇"
	separator      = " · "
	borderTop      = "┌"
	borderSide     = "│"
	borderBottom   = "└"
	checkSymbol    = "✓"
)

func WizardTheme() *huh.Theme {
	t := huh.ThemeBase()
	red := lipgloss.Color("1")
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.SetString("✗").Foreground(red)
	t.Blurred.ErrorMessage = t.Blurred.ErrorMessage.SetString("✗").Foreground(red)
	return t
}

// RegisterInput collects the answers of the register wizard as raw text.
type RegisterInput struct {
	Entry         string
	Type          string
	Version       string
	Configuration string
}

func ValidateEntryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("Entry name cannot be empty")
	}
	return nil
}

func ValidateVersion(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return errors.New("Version must be a non-negative number")
	}
	return nil
}

func RegisterForm(in *RegisterInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Entry").
				Value(&in.Entry).
				Validate(ValidateEntryName),
			huh.NewInput().
				Title("Type").
				Description("Required for new entries, e.g. table or file").
				Value(&in.Type),
			huh.NewInput().
				Title("Version").
				Description("Leave empty to use the next free number").
				Value(&in.Version).
				Validate(ValidateVersion),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Asset configuration").
				Description("YAML mapping").
				Value(&in.Configuration),
		),
	).WithTheme(WizardTheme())
}

type Field struct {
	Label    string
	Value    string
	Optional bool
}

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

func RenderWizard(title string, fields []Field, activeIdx int) string {
	var b strings.Builder

	border := borderStyle()

	b.WriteString(border.Render(borderTop))
	b.WriteString(" ")
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(border.Render(borderSide))
	b.WriteString("\n")

	for i, f := range fields {
		active := i == activeIdx
		if f.Value != "" || active {
			b.WriteString(renderField(f, active))
			b.WriteString("\n")
		}
	}

	if activeIdx >= 0 && activeIdx < len(fields) {
		b.WriteString(border.Render(borderSide))
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}

func RenderSuccess(entry string, version int, checks []string) string {
	var b strings.Builder

	border := borderStyle()

	b.WriteString(border.Render(borderTop))
	b.WriteString(" ")
	b.WriteString(activeSymbol)
	b.WriteString(" Registered ")
	b.WriteString(entry)
	b.WriteString(" v")
	b.WriteString(strconv.Itoa(version))
	b.WriteString("\n")

	b.WriteString(border.Render(borderSide))
	b.WriteString("\n")

	for _, check := range checks {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		b.WriteString(checkSymbol)
		b.WriteString(" ")
		b.WriteString(check)
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}

func renderField(f Field, active bool) string {
	var b strings.Builder

	if active {
		b.WriteString(activeSymbol)
		b.WriteString(" ")
		b.WriteString(f.Label)
		if f.Optional {
			b.WriteString(" (optional)")
		}
	} else {
		b.WriteString(completeSymbol)
		b.WriteString(" ")
		b.WriteString(f.Label)
		b.WriteString(separator)
		b.WriteString(f.Value)
	}

	return b.String()
}
