package cmd

import (
	"fmt"

	"github.com/dbsnap/dbsnap/pkg/cli/components"
	"github.com/dbsnap/dbsnap/pkg/cli/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version number of the CLI",
	RunE: func(cmd *cobra.Command, args []string) error {
		style := lipgloss.NewStyle().
			Background(styles.PrimaryBackgroundColor).
			Foreground(styles.PrimaryForegroundColor).
			Padding(1, 2)

		fmt.Fprint(
			cmd.OutOrStdout(),
			components.Container(style.Render("dbsnap CLI -→ "+Version)),
		)

		return nil
	},
}
