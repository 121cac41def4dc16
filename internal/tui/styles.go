package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	text    lipgloss.Color
	subtext lipgloss.Color
	surface lipgloss.Color
	base    lipgloss.Color
	brand   lipgloss.Color
	focus   lipgloss.Color
	success lipgloss.Color
	err     lipgloss.Color
}

var (
	darkPalette = palette{
		text:    "#cdd6f4",
		subtext: "#a6adc8",
		surface: "#45475a",
		base:    "#1e1e2e",
		brand:   "#a6e3a1",
		focus:   "#b4befe",
		success: "#a6e3a1",
		err:     "#f38ba8",
	}
	lightPalette = palette{
		text:    "#4c4f69",
		subtext: "#6c6f85",
		surface: "#bcc0cc",
		base:    "#eff1f5",
		brand:   "#40a02b",
		focus:   "#7287fd",
		success: "#40a02b",
		err:     "#d20f39",
	}
)

type styles struct {
	dark bool

	header      lipgloss.Style
	appName     lipgloss.Style
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	tabSep      lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	muted       lipgloss.Style
	value       lipgloss.Style
	spinner     lipgloss.Style
	toast       lipgloss.Style
	errorToast  lipgloss.Style
	settings    lipgloss.Style
	cursor      lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		dark:        dark,
		header:      lipgloss.NewStyle().Padding(0, 1).Background(p.base),
		appName:     lipgloss.NewStyle().Bold(true).Foreground(p.brand),
		activeTab:   lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(p.base).Background(p.focus),
		inactiveTab: lipgloss.NewStyle().Padding(0, 1).Foreground(p.subtext),
		tabSep:      lipgloss.NewStyle().Foreground(p.surface),
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.text).MarginBottom(1),
		label:       lipgloss.NewStyle().Bold(true).Foreground(p.text),
		muted:       lipgloss.NewStyle().Foreground(p.subtext),
		value:       lipgloss.NewStyle().Foreground(p.text),
		spinner:     lipgloss.NewStyle().Foreground(p.brand),
		toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.success).
			Padding(0, 1),
		errorToast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.err).
			Foreground(p.err).
			Padding(0, 1),
		settings: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.focus).
			Padding(1, 2),
		cursor: lipgloss.NewStyle().Foreground(p.focus),
	}
}
