package snapshots

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/dbsnap/dbsnap/pkg/adapter"
	"github.com/dbsnap/dbsnap/pkg/config"
)

const (
	BackupDatabaseSuffix = "_backup"
	TempDatabaseSuffix   = "_restore"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// The Controller orchestrates the snapshot lifecycle: create, restore, delete
// and clean. It owns the restore protocol that keeps the live database safe
// while a snapshot is loaded and swapped in.
type Controller struct {
	adapter adapter.Adapter
	config  *config.Config
	store   *Store
}

func NewController(c *config.Config, store *Store, a adapter.Adapter) *Controller {
	return &Controller{
		adapter: a,
		config:  c,
		store:   store,
	}
}

// Create captures the current content of the live database as a new snapshot.
// An empty name derives one from the current time. An empty dump is still a
// valid snapshot.
func (c *Controller) Create(ctx context.Context, name string) (Record, error) {
	if name == "" {
		name = DefaultName(time.Now().UTC())
	}

	if !namePattern.MatchString(name) {
		return Record{}, ErrInvalidName
	}

	if c.store.Exists(name) {
		return Record{}, ErrSnapshotExists
	}

	err := c.adapter.EnsureRunning(ctx)

	if err != nil {
		return Record{}, err
	}

	reader, writer := io.Pipe()

	go func() {
		writer.CloseWithError(c.adapter.Dump(ctx, writer))
	}()

	size, err := c.store.Put(name, reader)

	if err != nil {
		reader.CloseWithError(err)

		return Record{}, err
	}

	record := NewRecord(name, c.config.Database, c.config.Container, size)

	err = c.store.WriteMetadata(record)

	if err != nil {
		return Record{}, fmt.Errorf("error writing snapshot metadata: %w", err)
	}

	slog.Info("Created snapshot", "snapshot", name, "database", c.config.Database, "size_bytes", size)

	return record, nil
}

// Restore replaces the live database's content with a snapshot's content
// without ever leaving the system with a missing or half-written live
// database.
//
// The snapshot is loaded into a freshly created staging database first; only
// after the load succeeds is the live database renamed aside and the staging
// database renamed into place. A failure during the load drops the staging
// database and leaves the live database untouched. A failure between the two
// renames is the documented degraded state and is reported as a
// *SwapIncompleteError with no further automatic mutation.
func (c *Controller) Restore(ctx context.Context, name string, confirmed bool) error {
	if !c.store.Exists(name) {
		return ErrSnapshotNotFound
	}

	if !confirmed {
		return ErrNotConfirmed
	}

	lock := NewRestoreLock(config.TargetHash(c.config))

	err := lock.Acquire()

	if err != nil {
		return err
	}

	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			slog.Error("Error releasing restore lock", "error", releaseErr)
		}
	}()

	err = c.adapter.EnsureRunning(ctx)

	if err != nil {
		return err
	}

	liveDatabase := c.config.Database
	tempDatabase := liveDatabase + TempDatabaseSuffix
	backupDatabase := liveDatabase + BackupDatabaseSuffix

	// Prepare the staging database, clearing any leftover from a prior
	// failed attempt. The live database is untouched by this step.
	err = c.adapter.DropDatabaseIfExists(ctx, tempDatabase)

	if err != nil {
		return fmt.Errorf("error preparing staging database: %w", err)
	}

	err = c.adapter.CreateDatabase(ctx, tempDatabase)

	if err != nil {
		return fmt.Errorf("error preparing staging database: %w", err)
	}

	err = c.load(ctx, name, tempDatabase)

	if err != nil {
		// Loading a dump is the failure-prone step. Roll the staging
		// database back and leave the live database as it was.
		if dropErr := c.adapter.DropDatabaseIfExists(ctx, tempDatabase); dropErr != nil {
			slog.Error("Error dropping staging database after failed load", "database", tempDatabase, "error", dropErr)
		}

		return &RestoreFailedError{Snapshot: name, Err: err}
	}

	// The swap is three separate administrative calls, not a transaction.
	err = c.adapter.DropDatabaseIfExists(ctx, backupDatabase)

	if err != nil {
		return fmt.Errorf("error dropping previous backup database: %w", err)
	}

	err = c.adapter.RenameDatabase(ctx, liveDatabase, backupDatabase)

	if err != nil {
		return fmt.Errorf("error renaming live database aside: %w", err)
	}

	err = c.adapter.RenameDatabase(ctx, tempDatabase, liveDatabase)

	if err != nil {
		return &SwapIncompleteError{
			Database:       liveDatabase,
			BackupDatabase: backupDatabase,
			Err:            err,
		}
	}

	slog.Info("Restored snapshot", "snapshot", name, "database", liveDatabase, "backup", backupDatabase)

	return nil
}

// Delete removes a named snapshot from the store.
func (c *Controller) Delete(ctx context.Context, name string, confirmed bool) error {
	if !c.store.Exists(name) {
		return ErrSnapshotNotFound
	}

	if !confirmed {
		return ErrNotConfirmed
	}

	err := c.store.Delete(name)

	if err != nil {
		return err
	}

	slog.Info("Deleted snapshot", "snapshot", name)

	return nil
}

// Clean deletes every snapshot older than maxAgeDays and returns the number
// removed. The retention policy only selects; deletion happens here.
func (c *Controller) Clean(ctx context.Context, maxAgeDays int) (int, error) {
	if maxAgeDays < 0 {
		return 0, fmt.Errorf("max age must not be negative, got %d", maxAgeDays)
	}

	entries, err := c.store.List()

	if err != nil {
		return 0, err
	}

	records := make([]Record, 0, len(entries))

	for _, entry := range entries {
		records = append(records, entry.Record)
	}

	deleted := 0

	for _, name := range SelectForDeletion(records, maxAgeDays, time.Now().UTC()) {
		err = c.store.Delete(name)

		if err != nil {
			return deleted, fmt.Errorf("error deleting snapshot %q: %w", name, err)
		}

		slog.Info("Removed expired snapshot", "snapshot", name)

		deleted++
	}

	return deleted, nil
}

// List returns the stored snapshots in name order.
func (c *Controller) List() ([]Entry, error) {
	return c.store.List()
}

func (c *Controller) load(ctx context.Context, name, database string) error {
	payload, err := c.store.Open(name)

	if err != nil {
		return err
	}

	defer func() {
		if closeErr := payload.Close(); closeErr != nil {
			slog.Error("Error closing snapshot payload", "snapshot", name, "error", closeErr)
		}
	}()

	return c.adapter.RestoreInto(ctx, database, payload)
}
