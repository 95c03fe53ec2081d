package snapshots_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/dbsnap/dbsnap/internal/test"
	"github.com/dbsnap/dbsnap/pkg/config"
	"github.com/dbsnap/dbsnap/pkg/snapshots"
)

func TestStore(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		store := test.NewStore(t, c)

		t.Run("Put", func(t *testing.T) {
			payload := []byte("CREATE TABLE users (id INTEGER PRIMARY KEY);\n")

			size, err := store.Put("baseline", bytes.NewReader(payload))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if size != int64(len(payload)) {
				t.Errorf("expected size %d, got %d", len(payload), size)
			}

			if !store.Exists("baseline") {
				t.Error("expected snapshot to exist after put")
			}
		})

		t.Run("OpenRoundTrip", func(t *testing.T) {
			payload := []byte("SELECT 1;\n")

			_, err := store.Put("roundtrip", bytes.NewReader(payload))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			reader, err := store.Open("roundtrip")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			defer reader.Close()

			stored, err := io.ReadAll(reader)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !bytes.Equal(stored, payload) {
				t.Errorf("expected payload %q, got %q", payload, stored)
			}
		})

		t.Run("OpenMissing", func(t *testing.T) {
			_, err := store.Open("missing")

			if err != snapshots.ErrSnapshotNotFound {
				t.Errorf("expected ErrSnapshotNotFound, got %v", err)
			}
		})

		t.Run("EmptyPayload", func(t *testing.T) {
			size, err := store.Put("empty", bytes.NewReader(nil))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if size != 0 {
				t.Errorf("expected size 0, got %d", size)
			}

			if !store.Exists("empty") {
				t.Error("expected empty snapshot to exist")
			}
		})
	})
}

func TestStoreMetadata(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		store := test.NewStore(t, c)

		record := snapshots.NewRecord("baseline", "app", "pg-main", 42)

		err := store.WriteMetadata(record)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		stored, err := store.GetMetadata("baseline")

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if stored != record {
			t.Errorf("expected record %+v, got %+v", record, stored)
		}

		_, err = store.GetMetadata("missing")

		if err != snapshots.ErrSnapshotNotFound {
			t.Errorf("expected ErrSnapshotNotFound, got %v", err)
		}
	})
}

func TestStoreList(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		store := test.NewStore(t, c)

		t.Run("EmptyStore", func(t *testing.T) {
			entries, err := store.List()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(entries) != 0 {
				t.Errorf("expected no entries, got %d", len(entries))
			}
		})

		t.Run("WithMetadata", func(t *testing.T) {
			payload := []byte("SELECT 1;\n")

			size, err := store.Put("first", bytes.NewReader(payload))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			err = store.WriteMetadata(snapshots.NewRecord("first", "app", "pg-main", size))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			entries, err := store.List()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}

			if entries[0].Name != "first" {
				t.Errorf("expected entry name first, got %q", entries[0].Name)
			}

			if entries[0].Record.SizeBytes != int64(len(payload)) {
				t.Errorf("expected size %d, got %d", len(payload), entries[0].Record.SizeBytes)
			}
		})

		t.Run("PayloadWithoutMetadata", func(t *testing.T) {
			_, err := store.Put("orphan", strings.NewReader("SELECT 2;\n"))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			entries, err := store.List()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var orphan *snapshots.Entry

			for i := range entries {
				if entries[i].Name == "orphan" {
					orphan = &entries[i]
				}
			}

			if orphan == nil {
				t.Fatal("expected orphan payload to be listed")
			}

			if orphan.Record.Database != snapshots.Unknown {
				t.Errorf("expected Unknown database, got %q", orphan.Record.Database)
			}

			if orphan.Record.CreatedAt != snapshots.Unknown {
				t.Errorf("expected Unknown created_at, got %q", orphan.Record.CreatedAt)
			}
		})

		t.Run("MalformedMetadata", func(t *testing.T) {
			_, err := store.Put("corrupt", strings.NewReader("SELECT 3;\n"))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			err = writeRawMetadata(c, "corrupt", []byte("{not json"))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			entries, err := store.List()

			if err != nil {
				t.Fatalf("expected listing to tolerate malformed metadata, got %v", err)
			}

			for _, entry := range entries {
				if entry.Name == "corrupt" && entry.Record.Database != snapshots.Unknown {
					t.Errorf("expected Unknown record for corrupt metadata, got %+v", entry.Record)
				}
			}
		})

		t.Run("MetadataWithoutPayload", func(t *testing.T) {
			err := store.WriteMetadata(snapshots.NewRecord("ghost", "app", "pg-main", 1))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			entries, err := store.List()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			for _, entry := range entries {
				if entry.Name == "ghost" {
					t.Error("expected metadata without payload to be excluded from listing")
				}
			}

			if store.Exists("ghost") {
				t.Error("expected metadata without payload to read as not found")
			}
		})
	})
}

func TestStoreDelete(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		store := test.NewStore(t, c)

		_, err := store.Put("doomed", strings.NewReader("SELECT 1;\n"))

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		err = store.WriteMetadata(snapshots.NewRecord("doomed", "app", "pg-main", 10))

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		err = store.Delete("doomed")

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if store.Exists("doomed") {
			t.Error("expected snapshot to be removed")
		}

		// Deleting again is not an error at this layer.
		err = store.Delete("doomed")

		if err != nil {
			t.Errorf("expected delete to be idempotent, got %v", err)
		}
	})
}

func writeRawMetadata(c *config.Config, name string, data []byte) error {
	return test.WriteFile(c, name+snapshots.MetadataExtension, data)
}
