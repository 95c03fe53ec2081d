package cmd

import (
	"errors"
	"fmt"

	"github.com/dbsnap/dbsnap/pkg/cli/components"
	"github.com/dbsnap/dbsnap/pkg/config"
	"github.com/dbsnap/dbsnap/pkg/snapshots"

	"github.com/spf13/cobra"
)

func NewRestoreCmd(c *config.Config, factory ControllerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <name>",
		Short: "Restore the database to a snapshot's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validateConfig(c)

			if err != nil {
				return renderError(cmd, err)
			}

			controller, err := factory(c)

			if err != nil {
				return renderError(cmd, err)
			}

			confirmed, err := resolveConfirmation(
				cmd,
				fmt.Sprintf("Replace the content of database %q with snapshot %q?", c.Database, args[0]),
			)

			if err != nil {
				return renderError(cmd, err)
			}

			err = controller.Restore(cmd.Context(), args[0], confirmed)

			if err != nil {
				if errors.Is(err, snapshots.ErrNotConfirmed) {
					fmt.Fprint(
						cmd.OutOrStdout(),
						components.Container(components.WarningAlert("Restore aborted, the database was not modified")),
					)

					return rendered(err)
				}

				return renderError(cmd, err)
			}

			fmt.Fprint(
				cmd.OutOrStdout(),
				components.Container(
					components.SuccessAlert(fmt.Sprintf("Database %q restored from snapshot %q", c.Database, args[0])),
					components.WarningAlert(fmt.Sprintf("The previous content is kept as %q until the next restore", c.Database+snapshots.BackupDatabaseSuffix)),
				),
			)

			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Confirm the restore without prompting")

	return cmd
}
