package components

import (
	"github.com/dbsnap/dbsnap/pkg/cli/styles"

	"github.com/charmbracelet/lipgloss"
)

func alert(style lipgloss.Style, message string) string {
	return style.Render(message)
}

func ErrorAlert(message string) string {
	return alert(styles.AlertDangerStyle, message)
}

func SuccessAlert(message string) string {
	return alert(styles.AlertSuccessStyle, message)
}

func WarningAlert(message string) string {
	return alert(styles.AlertWarningStyle, message)
}
