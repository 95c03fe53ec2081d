package snapshots

import (
	"errors"
	"fmt"
)

var ErrInvalidName = errors.New("snapshot names may only contain letters, numbers, dots, dashes and underscores")
var ErrNotConfirmed = errors.New("operation was not confirmed")
var ErrRestoreInProgress = errors.New("a restore is already in progress for this target")
var ErrSnapshotExists = errors.New("a snapshot with this name already exists")
var ErrSnapshotNotFound = errors.New("snapshot not found")

// RestoreFailedError reports a failure while loading a snapshot into the
// staging database. The live database is untouched when this is returned.
type RestoreFailedError struct {
	Snapshot string
	Err      error
}

func (e *RestoreFailedError) Error() string {
	return fmt.Sprintf("restore of snapshot %q failed, the live database was not modified: %v", e.Snapshot, e.Err)
}

func (e *RestoreFailedError) Unwrap() error {
	return e.Err
}

// SwapIncompleteError reports the documented degraded state where the live
// database was renamed away but the restored database could not take its
// place. Recovery is a manual rename of the backup database; no further
// mutation is attempted automatically.
type SwapIncompleteError struct {
	Database       string
	BackupDatabase string
	Err            error
}

func (e *SwapIncompleteError) Error() string {
	return fmt.Sprintf(
		"swap incomplete: no database named %q exists, the previous content is preserved as %q and must be recovered manually: %v",
		e.Database,
		e.BackupDatabase,
		e.Err,
	)
}

func (e *SwapIncompleteError) Unwrap() error {
	return e.Err
}
