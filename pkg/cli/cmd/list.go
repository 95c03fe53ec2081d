package cmd

import (
	"fmt"

	"github.com/dbsnap/dbsnap/pkg/cli/components"
	"github.com/dbsnap/dbsnap/pkg/config"

	"github.com/spf13/cobra"
)

func NewListCmd(c *config.Config, factory ControllerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validateConfig(c)

			if err != nil {
				return renderError(cmd, err)
			}

			controller, err := factory(c)

			if err != nil {
				return renderError(cmd, err)
			}

			entries, err := controller.List()

			if err != nil {
				return renderError(cmd, err)
			}

			if len(entries) == 0 {
				fmt.Fprint(
					cmd.OutOrStdout(),
					components.Container(components.WarningAlert("No snapshots found")),
				)

				return nil
			}

			rows := make([][]string, 0, len(entries))

			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Name,
					entry.Record.CreatedAt,
					formatSize(entry.Record.SizeBytes),
					entry.Record.Database,
				})
			}

			columns := []string{
				"NAME",
				"CREATED",
				"SIZE",
				"DATABASE",
			}

			fmt.Fprint(
				cmd.OutOrStdout(),
				components.Container(components.NewTable(columns, rows).Render()),
			)

			return nil
		},
	}
}
