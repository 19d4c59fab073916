package themes

import (
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the wizard and command output.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	RoundedBox    lipgloss.Style
	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	Icon          lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
}

// palette is the handful of colors a theme is built from.
type palette struct {
	primary   lipgloss.Color
	onPrimary lipgloss.Color
	text      lipgloss.Color
	subtext   lipgloss.Color
	muted     lipgloss.Color
	border    lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	danger    lipgloss.Color
	info      lipgloss.Color
}

func newTheme(p palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}

	return Theme{
		Primary: p.primary,
		Muted:   p.muted,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.text).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.subtext).MarginBottom(1),
		Normal:   lipgloss.NewStyle().Foreground(p.text),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Selected: lipgloss.NewStyle().Background(p.primary).Foreground(p.onPrimary).Bold(true),

		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
		ProgressFull:  lipgloss.NewStyle().Foreground(p.primary),
		ProgressEmpty: lipgloss.NewStyle().Foreground(p.border),

		StatusSuccess: status(p.success),
		StatusWarning: status(p.warning),
		StatusError:   status(p.danger),
		StatusInfo:    status(p.info),
		StatusPending: lipgloss.NewStyle().Foreground(p.muted).Italic(true),

		Icon: lipgloss.NewStyle().Width(3).Align(lipgloss.Center),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:   lipgloss.Color("#7c3aed"),
	onPrimary: lipgloss.Color("#fafafa"),
	text:      lipgloss.Color("#fafafa"),
	subtext:   lipgloss.Color("#a3a3a3"),
	muted:     lipgloss.Color("#737373"),
	border:    lipgloss.Color("#404040"),
	success:   lipgloss.Color("#10b981"),
	warning:   lipgloss.Color("#f59e0b"),
	danger:    lipgloss.Color("#ef4444"),
	info:      lipgloss.Color("#3b82f6"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:   lipgloss.Color("#cba6f7"),
	onPrimary: lipgloss.Color("#1e1e2e"),
	text:      lipgloss.Color("#cdd6f4"),
	subtext:   lipgloss.Color("#a6adc8"),
	muted:     lipgloss.Color("#6c7086"),
	border:    lipgloss.Color("#45475a"),
	success:   lipgloss.Color("#a6e3a1"),
	warning:   lipgloss.Color("#f9e2af"),
	danger:    lipgloss.Color("#f38ba8"),
	info:      lipgloss.Color("#89dceb"),
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// ConfidenceStyle picks the status style for a match confidence.
func (t Theme) ConfidenceStyle(confidence float64) lipgloss.Style {
	switch {
	case confidence >= 0.85:
		return t.StatusSuccess
	case confidence >= 0.6:
		return t.StatusWarning
	default:
		return t.StatusError
	}
}

// RecommendationStyle picks the status style for a recommendation.
func (t Theme) RecommendationStyle(kind model.RecommendationType) lipgloss.Style {
	switch kind {
	case model.RecommendationError:
		return t.StatusError
	case model.RecommendationWarning:
		return t.StatusWarning
	case model.RecommendationSuccess:
		return t.StatusSuccess
	case model.RecommendationTip:
		return t.StatusPending
	default:
		return t.StatusInfo
	}
}

// SystemIcons maps thread systems to short badges.
var SystemIcons = map[model.System]string{
	model.SystemMetric:    "M",
	model.SystemWhitworth: "W",
}

// HeadTypeIcons maps head types to glyphs.
var HeadTypeIcons = map[model.HeadType]string{
	model.HeadHex:      "⬡",
	model.HeadAllen:    "⎔",
	model.HeadPhillips: "✚",
	model.HeadFlat:     "⊖",
	model.HeadPan:      "◠",
	model.HeadCarriage: "◒",
	model.HeadSquare:   "▢",
}

// RecommendationIcons maps recommendation types to glyphs.
var RecommendationIcons = map[model.RecommendationType]string{
	model.RecommendationError:   "✗",
	model.RecommendationWarning: "!",
	model.RecommendationInfo:    "i",
	model.RecommendationTip:     "*",
	model.RecommendationSuccess: "✓",
}

// GetSystemIcon returns the badge for a system.
func GetSystemIcon(system model.System) string {
	if icon, ok := SystemIcons[system]; ok {
		return icon
	}
	return "?"
}

// GetHeadTypeIcon returns the glyph for a head type.
func GetHeadTypeIcon(head model.HeadType) string {
	if icon, ok := HeadTypeIcons[head]; ok {
		return icon
	}
	return "•"
}

// GetRecommendationIcon returns the glyph for a recommendation type.
func GetRecommendationIcon(kind model.RecommendationType) string {
	if icon, ok := RecommendationIcons[kind]; ok {
		return icon
	}
	return "•"
}
