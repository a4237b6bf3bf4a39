package teahost

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colours of the host chrome.
type Theme struct {
	HighlightColor  lipgloss.Color // Current breadcrumb
	AccentColor     lipgloss.Color // Header background
	TextColor       lipgloss.Color // Header text
	HintColor       lipgloss.Color // Breadcrumb trail, footer, loading indicator
	ErrorColor      lipgloss.Color // Load failures
	BackgroundColor lipgloss.Color // Body background, empty for the terminal default
}

var themes = map[string]Theme{
	"default": {
		HighlightColor: lipgloss.Color("#5FAFFF"),
		AccentColor:    lipgloss.Color("#1B2A49"),
		TextColor:      lipgloss.Color("#FFFFFF"),
		HintColor:      lipgloss.Color("#7A7A7A"),
		ErrorColor:     lipgloss.Color("#FF6666"),
	},
	"cannoli": {
		HighlightColor:  lipgloss.Color("#000000"),
		AccentColor:     lipgloss.Color("#008080"),
		TextColor:       lipgloss.Color("#FFFFFF"),
		HintColor:       lipgloss.Color("#000000"),
		ErrorColor:      lipgloss.Color("#B00020"),
		BackgroundColor: lipgloss.Color("#FFFFFF"),
	},
}

// ThemeNames returns the names ThemeByName accepts.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme. An empty name is the default theme.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		name = "default"
	}
	theme, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q, expected one of %v", name, ThemeNames())
	}
	return theme, nil
}

// Styles holds the lipgloss styles used by the host chrome.
type Styles struct {
	Crumb        lipgloss.Style
	CurrentCrumb lipgloss.Style
	FadingCrumb  lipgloss.Style
	Separator    string
	Header       lipgloss.Style
	Body         lipgloss.Style
	Loading      lipgloss.Style
	Error        lipgloss.Style
	Footer       lipgloss.Style
}

// DefaultStyles returns the styles of the default theme.
func DefaultStyles() Styles {
	return themes["default"].Styles()
}

// Styles builds the host styles for t.
func (t Theme) Styles() Styles {
	body := lipgloss.NewStyle().Padding(1, 2)
	if t.BackgroundColor != "" {
		body = body.Background(t.BackgroundColor)
	}

	return Styles{
		Crumb: lipgloss.NewStyle().
			Foreground(t.HintColor),
		CurrentCrumb: lipgloss.NewStyle().
			Foreground(t.HighlightColor).
			Bold(true),
		FadingCrumb: lipgloss.NewStyle().
			Foreground(t.HintColor).
			Faint(true).
			Strikethrough(true),
		Separator: " › ",
		Header: lipgloss.NewStyle().
			Background(t.AccentColor).
			Foreground(t.TextColor).
			Padding(0, 1),
		Body: body,
		Loading: lipgloss.NewStyle().
			Foreground(t.HintColor).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(t.ErrorColor),
		Footer: lipgloss.NewStyle().
			Foreground(t.HintColor),
	}
}
