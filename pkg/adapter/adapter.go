package adapter

import (
	"context"
	"fmt"
	"io"
)

// Reason classifies why an administrative command failed so the caller can
// tell an unreachable environment apart from a command the engine rejected.
type Reason string

const (
	// ReasonCommand means the environment ran the command and it reported an error.
	ReasonCommand Reason = "command"
	// ReasonConnection means the command could not be run at all.
	ReasonConnection Reason = "connection"
	// ReasonTimeout means the command did not return within the configured timeout.
	ReasonTimeout Reason = "timeout"
)

type Error struct {
	Op     string
	Reason Reason
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("adapter %s failed (%s): %s", e.Op, e.Reason, e.Stderr)
	}

	return fmt.Sprintf("adapter %s failed (%s): %v", e.Op, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// An Adapter runs administrative commands against the target database
// environment. Every call is blocking and bound by the context passed to it;
// implementations must classify failures with an *Error.
type Adapter interface {
	// CreateDatabase creates a new, empty database.
	CreateDatabase(ctx context.Context, name string) error
	// DropDatabaseIfExists drops a database, succeeding when it is already gone.
	DropDatabaseIfExists(ctx context.Context, name string) error
	// Dump writes a complete, restorable export of the target database to output.
	Dump(ctx context.Context, output io.Writer) error
	// EnsureRunning starts the backing container if needed and blocks until
	// the engine accepts connections.
	EnsureRunning(ctx context.Context) error
	// RenameDatabase renames a database.
	RenameDatabase(ctx context.Context, oldName, newName string) error
	// RestoreInto replays a dump into the named database, which must already
	// exist and must not be the live database.
	RestoreInto(ctx context.Context, name string, input io.Reader) error
}
