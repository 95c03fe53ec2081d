package cmd

import (
	"fmt"

	"github.com/dbsnap/dbsnap/pkg/cli/components"
	"github.com/dbsnap/dbsnap/pkg/config"

	"github.com/spf13/cobra"
)

func NewCreateCmd(c *config.Config, factory ControllerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a snapshot of the current database state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validateConfig(c)

			if err != nil {
				return renderError(cmd, err)
			}

			name := ""

			if len(args) > 0 {
				name = args[0]
			}

			controller, err := factory(c)

			if err != nil {
				return renderError(cmd, err)
			}

			record, err := controller.Create(cmd.Context(), name)

			if err != nil {
				return renderError(cmd, err)
			}

			fmt.Fprint(
				cmd.OutOrStdout(),
				components.Container(
					components.SuccessAlert(fmt.Sprintf("Snapshot %q created", record.SnapshotName)),
					components.NewCard(
						components.WithCardTitle("Snapshot"),
						components.WithCardRows([]components.CardRow{
							{Key: "Name", Value: record.SnapshotName},
							{Key: "Database", Value: record.Database},
							{Key: "Container", Value: record.Container},
							{Key: "Size", Value: formatSize(record.SizeBytes)},
							{Key: "Created At", Value: record.CreatedAt},
						}),
					).Render(),
				),
			)

			return nil
		},
	}
}
