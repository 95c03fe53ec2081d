package cmd

import (
	"errors"
	"fmt"

	"github.com/dbsnap/dbsnap/pkg/cli/components"
	"github.com/dbsnap/dbsnap/pkg/config"
	"github.com/dbsnap/dbsnap/pkg/snapshots"

	"github.com/spf13/cobra"
)

func NewDeleteCmd(c *config.Config, factory ControllerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a snapshot",
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
				fmt.Sprintf("Delete snapshot %q?", args[0]),
			)

			if err != nil {
				return renderError(cmd, err)
			}

			err = controller.Delete(cmd.Context(), args[0], confirmed)

			if err != nil {
				if errors.Is(err, snapshots.ErrNotConfirmed) {
					fmt.Fprint(
						cmd.OutOrStdout(),
						components.Container(components.WarningAlert("Delete aborted")),
					)

					return rendered(err)
				}

				return renderError(cmd, err)
			}

			fmt.Fprint(
				cmd.OutOrStdout(),
				components.Container(
					components.SuccessAlert(fmt.Sprintf("Snapshot %q deleted", args[0])),
				),
			)

			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Confirm the delete without prompting")

	return cmd
}
