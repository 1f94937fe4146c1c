// Package themes holds the color schemes of the interactive form.
package themes

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Label         lipgloss.Style
	Normal        lipgloss.Style
	Selected      lipgloss.Style
	Choice        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	ModeBadge     lipgloss.Style
	RoundedBox    lipgloss.Style
	Help          lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Muted         lipgloss.Color
}

// Default is the default theme.
var Default = build("default", palette{
	primary:    "#7c3aed",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	border:     "#404040",
	muted:      "#737373",
	success:    "#10b981",
	errorColor: "#ef4444",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build("catppuccin", palette{
	primary:    "#cba6f7",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	border:     "#45475a",
	muted:      "#6c7086",
	success:    "#a6e3a1",
	errorColor: "#f38ba8",
})

// Named returns the theme called name.
func Named(name string) (Theme, error) {
	switch name {
	case "", Default.Name:
		return Default, nil
	case CatppuccinMocha.Name:
		return CatppuccinMocha, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}

type palette struct {
	primary    string
	foreground string
	subtle     string
	border     string
	muted      string
	success    string
	errorColor string
}

func build(name string, p palette) Theme {
	return Theme{
		Name:    name,
		Primary: lipgloss.Color(p.primary),
		Muted:   lipgloss.Color(p.muted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Label: lipgloss.NewStyle().
			Width(18).
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.primary)).
			Bold(true),
		Choice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.primary)),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
		ModeBadge: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color("#1a1a1a")).
			Bold(true).
			Padding(0, 1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
	}
}
