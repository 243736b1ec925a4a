package ui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
}

var palettes = map[string]palette{
	"neon": {
		Text:      lipgloss.Color("#e8e8f0"),
		Muted:     lipgloss.Color("#6b6b85"),
		Accent:    lipgloss.Color("#4fd6ff"),
		AccentAlt: lipgloss.Color("#ff6ac1"),
		Success:   lipgloss.Color("#5af78e"),
		Warning:   lipgloss.Color("#f3f99d"),
	},
	"noir": {
		Text:      lipgloss.Color("#d8d8d8"),
		Muted:     lipgloss.Color("#707070"),
		Accent:    lipgloss.Color("#c0a85a"),
		AccentAlt: lipgloss.Color("#9a7bb0"),
		Success:   lipgloss.Color("#8fbf6f"),
		Warning:   lipgloss.Color("#d98c5f"),
	},
	"arcade": {
		Text:      lipgloss.Color("#f8f8f2"),
		Muted:     lipgloss.Color("#6272a4"),
		Accent:    lipgloss.Color("#ffb86c"),
		AccentAlt: lipgloss.Color("#bd93f9"),
		Success:   lipgloss.Color("#50fa7b"),
		Warning:   lipgloss.Color("#ff5555"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["neon"]
}
