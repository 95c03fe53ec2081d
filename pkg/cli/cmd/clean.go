package cmd

import (
	"fmt"

	"github.com/dbsnap/dbsnap/pkg/cli/components"
	"github.com/dbsnap/dbsnap/pkg/config"

	"github.com/spf13/cobra"
)

func NewCleanCmd(c *config.Config, factory ControllerFactory) *cobra.Command {
	var maxAgeDays int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete snapshots older than a maximum age",
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

			deleted, err := controller.Clean(cmd.Context(), maxAgeDays)

			if err != nil {
				return renderError(cmd, err)
			}

			message := fmt.Sprintf("Removed %d snapshots older than %d days", deleted, maxAgeDays)

			if deleted == 1 {
				message = fmt.Sprintf("Removed 1 snapshot older than %d days", maxAgeDays)
			}

			fmt.Fprint(
				cmd.OutOrStdout(),
				components.Container(components.SuccessAlert(message)),
			)

			return nil
		},
	}

	cmd.Flags().IntVar(&maxAgeDays, "max-age-days", 7, "Delete snapshots older than this many days")

	return cmd
}
