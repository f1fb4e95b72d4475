package ui

import lipgloss "charm.land/lipgloss/v2"

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Good         lipgloss.Style
	Bad          lipgloss.Style
	Pending      lipgloss.Style
	Muted        lipgloss.Style
	Info         lipgloss.Style
	XPFlash      lipgloss.Style
}

// ThemeVariants lists the selectable variants in toggle order.
var ThemeVariants = []string{"modern_arcade", "cozy_clean", "retro_terminal"}

func DefaultTheme() Theme {
	return ThemeForVariant("modern_arcade")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "cozy_clean":
		return cozyCleanTheme()
	case "retro_terminal":
		return retroTerminalTheme()
	default:
		return modernArcadeTheme()
	}
}

// NextVariant cycles through ThemeVariants; unknown input restarts the cycle.
func NextVariant(current string) string {
	for i, v := range ThemeVariants {
		if v == current {
			return ThemeVariants[(i+1)%len(ThemeVariants)]
		}
	}
	return ThemeVariants[0]
}

func modernArcadeTheme() Theme {
	gold := lipgloss.Color("#FFD166")
	mint := lipgloss.Color("#6EF2A9")
	coral := lipgloss.Color("#FF6B81")
	ink := lipgloss.Color("#101726")
	slate := lipgloss.Color("#1D2A45")
	powder := lipgloss.Color("#EDF3FF")
	cyan := lipgloss.Color("#63E6F7")
	border := lipgloss.Color("#4E6390")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(slate).
			Foreground(powder).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		PanelBorder: lipgloss.NewStyle().
			Foreground(border),
		PanelBody: lipgloss.NewStyle().
			Foreground(powder),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cyan).
			Background(ink).
			Foreground(powder).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		Good: lipgloss.NewStyle().
			Foreground(mint).
			Bold(true),
		Bad: lipgloss.NewStyle().
			Foreground(coral).
			Bold(true),
		Pending: lipgloss.NewStyle().
			Foreground(gold),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96A4C4")),
		Info: lipgloss.NewStyle().
			Foreground(cyan),
		XPFlash: lipgloss.NewStyle().
			Foreground(gold).
			Bold(true),
	}
}

func cozyCleanTheme() Theme {
	honey := lipgloss.Color("#F1B76E")
	sage := lipgloss.Color("#7FC6A0")
	rose := lipgloss.Color("#D4798C")
	night := lipgloss.Color("#202633")
	slate := lipgloss.Color("#333C4F")
	paper := lipgloss.Color("#F5F7FB")
	sky := lipgloss.Color("#89B8F5")

	return Theme{
		Header:      lipgloss.NewStyle().Background(night).Foreground(paper).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(slate).Foreground(paper).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(honey).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(slate),
		PanelBody:   lipgloss.NewStyle().Foreground(paper),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(honey).
			Background(night).
			Foreground(paper).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(honey).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(sky).Bold(true),
		Good:         lipgloss.NewStyle().Foreground(sage).Bold(true),
		Bad:          lipgloss.NewStyle().Foreground(rose).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(honey),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#A6AFC5")),
		Info:         lipgloss.NewStyle().Foreground(sky),
		XPFlash:      lipgloss.NewStyle().Foreground(honey).Bold(true),
	}
}

func retroTerminalTheme() Theme {
	lime := lipgloss.Color("#98F6A0")
	amber := lipgloss.Color("#E6D578")
	red := lipgloss.Color("#FF6E6E")
	deep := lipgloss.Color("#08160B")
	forest := lipgloss.Color("#14331C")
	glow := lipgloss.Color("#C8F8C6")

	return Theme{
		Header:      lipgloss.NewStyle().Background(deep).Foreground(glow).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(forest).Foreground(glow).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(amber).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(forest),
		PanelBody:   lipgloss.NewStyle().Foreground(glow),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(amber).
			Background(deep).
			Foreground(glow).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(amber).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(lime).Bold(true),
		Good:         lipgloss.NewStyle().Foreground(lime).Bold(true),
		Bad:          lipgloss.NewStyle().Foreground(red).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(amber),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#76A47D")),
		Info:         lipgloss.NewStyle().Foreground(lime),
		XPFlash:      lipgloss.NewStyle().Foreground(amber).Bold(true),
	}
}
