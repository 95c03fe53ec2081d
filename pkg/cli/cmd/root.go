package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbsnap/dbsnap/pkg/cli/components"
	"github.com/dbsnap/dbsnap/pkg/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const Version = "v0.1.0"

func addCommands(cmd *cobra.Command, c *config.Config, factory ControllerFactory) {
	cmd.AddCommand(VersionCmd)
	cmd.AddCommand(NewCreateCmd(c, factory))
	cmd.AddCommand(NewRestoreCmd(c, factory))
	cmd.AddCommand(NewListCmd(c, factory))
	cmd.AddCommand(NewDeleteCmd(c, factory))
	cmd.AddCommand(NewCleanCmd(c, factory))
}

func RootCmd(c *config.Config, factory ControllerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "dbsnap <command> [flags]",
		Short:             "dbsnap CLI",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Long:              `Capture, restore and manage point-in-time snapshots of a database from the command line`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := lipgloss.NewStyle().Bold(true).
				Margin(0, 0, 1).
				Render("dbsnap CLI - " + Version)

			items := []components.ListItem{
				{Name: "create", Description: "Capture the current database state"},
				{Name: "restore", Description: "Restore a captured state"},
				{Name: "list", Description: "Show available snapshots"},
				{Name: "delete", Description: "Remove a snapshot"},
				{Name: "clean", Description: "Age out old snapshots"},
			}

			container := components.Container(
				fmt.Sprintf(
					"%s\n%s\n\n\n%s",
					title,
					"For help type \"dbsnap help\"",
					components.TabularList(items),
				),
			)

			fmt.Fprintln(cmd.OutOrStdout(), container)

			return renderError(cmd, errors.New("a command is required"))
		},
	}

	addCommands(cmd, c, factory)

	cmd.PersistentFlags().StringVar(&c.Container, "container", c.Container, "The target database container")
	cmd.PersistentFlags().StringVar(&c.Database, "database", c.Database, "The database to snapshot and restore")
	cmd.PersistentFlags().StringVar(&c.User, "user", c.User, "The database user")
	cmd.PersistentFlags().StringVar(&c.Password, "password", c.Password, "The database password")
	cmd.PersistentFlags().StringVar(&c.Host, "host", c.Host, "The database host")
	cmd.PersistentFlags().StringVar(&c.Port, "port", c.Port, "The database port")
	cmd.PersistentFlags().StringVar(&c.SnapshotDirectory, "snapshot-dir", c.SnapshotDirectory, "The directory where snapshots are stored")
	cmd.PersistentFlags().Bool("no-interaction", false, "Disable interactive prompts")

	return cmd
}

func NewRoot() error {
	// A .env file is optional; environment variables win when both exist.
	godotenv.Load()

	c := config.NewConfig()

	return Execute(context.Background(), RootCmd(c, DefaultControllerFactory))
}
