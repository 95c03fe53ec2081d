package styles

import "github.com/charmbracelet/lipgloss"

var PrimaryTextColor = lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#2dd4bf"}
var PrimaryBackgroundColor = lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#0d9488"}
var PrimaryForegroundColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
var TextColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

var LineSpacerStyle = lipgloss.NewStyle().Foreground(
	lipgloss.AdaptiveColor{Light: "#d4d4d4", Dark: "#404040"},
)

var alertStyle = lipgloss.NewStyle().Padding(1, 2)

var AlertSuccessStyle = alertStyle.
	Background(lipgloss.CompleteAdaptiveColor{
		Light: lipgloss.CompleteColor{
			TrueColor: "#bbf7d0",
			ANSI256:   "194",
			ANSI:      "37",
		},
		Dark: lipgloss.CompleteColor{
			TrueColor: "#bbf7d0",
			ANSI256:   "194",
			ANSI:      "37",
		},
	}).
	Foreground(lipgloss.CompleteAdaptiveColor{
		Light: lipgloss.CompleteColor{
			TrueColor: "#14532d",
			ANSI256:   "29",
			ANSI:      "30",
		},
		Dark: lipgloss.CompleteColor{
			TrueColor: "#166534",
			ANSI256:   "29",
			ANSI:      "30",
		},
	})

var AlertDangerStyle = alertStyle.
	Background(lipgloss.CompleteAdaptiveColor{
		Light: lipgloss.CompleteColor{
			TrueColor: "#fecaca",
			ANSI256:   "224",
			ANSI:      "97",
		},
		Dark: lipgloss.CompleteColor{
			TrueColor: "#fecaca",
			ANSI256:   "224",
			ANSI:      "97",
		},
	}).
	Foreground(lipgloss.CompleteAdaptiveColor{
		Light: lipgloss.CompleteColor{
			TrueColor: "#7f1d1d",
			ANSI256:   "95",
			ANSI:      "30",
		},
		Dark: lipgloss.CompleteColor{
			TrueColor: "#991b1b",
			ANSI256:   "132",
			ANSI:      "31",
		},
	})

var AlertWarningStyle = alertStyle.
	Background(lipgloss.AdaptiveColor{
		Light: "#fde68a",
		Dark:  "#fde68a",
	}).
	Foreground(lipgloss.AdaptiveColor{
		Light: "#78350f",
		Dark:  "#92400e",
	})
