package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dbsnap/dbsnap/internal/validation"
	"github.com/dbsnap/dbsnap/pkg/adapter"
	"github.com/dbsnap/dbsnap/pkg/cli/components"
	"github.com/dbsnap/dbsnap/pkg/config"
	"github.com/dbsnap/dbsnap/pkg/snapshots"
	"github.com/dbsnap/dbsnap/pkg/storage"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// A ControllerFactory builds the lifecycle controller a command runs against.
// Tests substitute a factory that wires an in-memory adapter.
type ControllerFactory func(c *config.Config) (*snapshots.Controller, error)

func DefaultControllerFactory(c *config.Config) (*snapshots.Controller, error) {
	fileSystem, err := storage.NewFileSystemFromConfig(c)

	if err != nil {
		return nil, err
	}

	store, err := snapshots.NewStore(fileSystem)

	if err != nil {
		return nil, err
	}

	return snapshots.NewController(c, store, adapter.NewPostgres(c)), nil
}

var configMessages = map[string]string{
	"container.required":          "A target container is required",
	"database.required":           "A database name is required",
	"host.required":               "A database host is required",
	"port.required":               "A database port is required",
	"port.numeric":                "The database port must be numeric",
	"snapshot_directory.required": "A snapshot directory is required",
	"storage_driver.oneof":        "The storage driver must be either local or object",
	"user.required":               "A database user is required",
}

func validateConfig(c *config.Config) error {
	validationErrors := validation.Validate(c, configMessages)

	if validationErrors == nil {
		return nil
	}

	fields := make([]string, 0, len(validationErrors))

	for field := range validationErrors {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	messages := make([]string, 0, len(fields))

	for _, field := range fields {
		messages = append(messages, validationErrors[field]...)
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, ", "))
}

// resolveConfirmation turns the --yes flag, the interaction mode, and an
// optional prompt into the pre-resolved boolean the controller expects.
func resolveConfirmation(cmd *cobra.Command, question string) (bool, error) {
	yes, _ := cmd.Flags().GetBool("yes")

	if yes {
		return true, nil
	}

	noInteraction, _ := cmd.Flags().GetBool("no-interaction")

	if noInteraction || !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, nil
	}

	return components.Confirm(question)
}

// A renderedError marks a failure whose message was already written to the
// command's error output, so Execute does not report it a second time.
type renderedError struct {
	err error
}

func (e *renderedError) Error() string {
	return e.err.Error()
}

func (e *renderedError) Unwrap() error {
	return e.err
}

func rendered(err error) error {
	return &renderedError{err: err}
}

func renderError(cmd *cobra.Command, err error) error {
	fmt.Fprint(
		cmd.ErrOrStderr(),
		components.Container(components.ErrorAlert(err.Error())),
	)

	return rendered(err)
}

// Execute runs the command tree and makes sure every failure reaches the
// error output. RunE paths render their own errors; argument and flag parse
// errors are returned by cobra without any output, so they are rendered here.
func Execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)

	if err == nil {
		return nil
	}

	var alreadyRendered *renderedError

	if !errors.As(err, &alreadyRendered) {
		fmt.Fprint(
			root.ErrOrStderr(),
			components.Container(components.ErrorAlert(err.Error())),
		)
	}

	return err
}

func formatSize(sizeBytes int64) string {
	if sizeBytes < 0 {
		return snapshots.Unknown
	}

	return humanize.Bytes(uint64(sizeBytes))
}
