package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dbsnap/dbsnap/pkg/config"
	"github.com/dbsnap/dbsnap/pkg/snapshots"
	"github.com/dbsnap/dbsnap/pkg/storage"
	"github.com/google/uuid"
)

// Setup returns a test configuration pointed at a temporary snapshot
// directory that is removed when the test finishes.
func Setup(t *testing.T) *config.Config {
	t.Helper()

	t.Setenv("DBSNAP_ENV", config.EnvTest)

	c := config.NewConfig()
	c.SnapshotDirectory = t.TempDir()

	// A unique container name keys the restore lock per test, so packages
	// running in parallel cannot contend on the same lock file.
	c.Container = "postgres-" + uuid.NewString()[:8]

	return c
}

// Run invokes the callback with a fresh test configuration.
func Run(t *testing.T, callback func(c *config.Config)) {
	t.Helper()

	callback(Setup(t))
}

// NewStore returns a snapshot store backed by the configured temporary
// directory.
func NewStore(t *testing.T, c *config.Config) *snapshots.Store {
	t.Helper()

	store, err := snapshots.NewStore(
		storage.NewFileSystem(storage.NewLocalFileSystemDriver(c.SnapshotDirectory)),
	)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	return store
}

// WriteFile writes a raw file into the configured snapshot directory.
func WriteFile(c *config.Config, name string, data []byte) error {
	return os.WriteFile(filepath.Join(c.SnapshotDirectory, name), data, 0640)
}

// NewController returns a lifecycle controller wired to an in-memory engine
// adapter, plus the adapter for seeding state and injecting failures.
func NewController(t *testing.T, c *config.Config) (*snapshots.Controller, *MemoryAdapter) {
	t.Helper()

	memoryAdapter := NewMemoryAdapter(c)

	return snapshots.NewController(c, NewStore(t, c), memoryAdapter), memoryAdapter
}
