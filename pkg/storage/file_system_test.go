package storage_test

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/dbsnap/dbsnap/internal/test"
	"github.com/dbsnap/dbsnap/pkg/config"
	"github.com/dbsnap/dbsnap/pkg/storage"
)

func TestFileSystemFromConfig(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		t.Run("DefaultsToTheLocalDriver", func(t *testing.T) {
			fileSystem, err := storage.NewFileSystemFromConfig(c)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if fileSystem == nil {
				t.Fatal("expected a file system")
			}
		})

		t.Run("ObjectDriver", func(t *testing.T) {
			c.StorageDriver = config.StorageDriverObject
			c.StorageBucket = "snapshots"
			c.StorageRegion = "us-east-1"
			c.StorageAccessKeyId = "access-key"
			c.StorageSecretAccessKey = "secret-key"

			fileSystem, err := storage.NewFileSystemFromConfig(c)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if fileSystem == nil {
				t.Fatal("expected a file system")
			}
		})
	})
}

func TestFileSystem(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		fileSystem, err := storage.NewFileSystemFromConfig(c)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		err = fileSystem.MkdirAll("", 0750)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		t.Run("WriteAndReadFile", func(t *testing.T) {
			err := fileSystem.WriteFile("metadata.json", []byte(`{}`), 0640)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			data, err := fileSystem.ReadFile("metadata.json")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if string(data) != `{}` {
				t.Errorf("expected the written content, got %q", data)
			}
		})

		t.Run("CreateAndOpen", func(t *testing.T) {
			writer, err := fileSystem.Create("payload.dump.gz")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			_, err = writer.Write([]byte("payload"))

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			err = writer.Close()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			reader, err := fileSystem.Open("payload.dump.gz")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			defer reader.Close()

			data, err := io.ReadAll(reader)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if string(data) != "payload" {
				t.Errorf("expected the written content, got %q", data)
			}
		})

		t.Run("StatAndReadDir", func(t *testing.T) {
			info, err := fileSystem.Stat("payload.dump.gz")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if info.Size() != int64(len("payload")) {
				t.Errorf("expected size %d, got %d", len("payload"), info.Size())
			}

			entries, err := fileSystem.ReadDir("")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(entries) != 2 {
				t.Errorf("expected 2 entries, got %d", len(entries))
			}
		})

		t.Run("Rename", func(t *testing.T) {
			err := fileSystem.Rename("payload.dump.gz", "renamed.dump.gz")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			_, err = fileSystem.Stat("payload.dump.gz")

			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("expected the old path to be gone, got %v", err)
			}

			_, err = fileSystem.Stat("renamed.dump.gz")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Remove", func(t *testing.T) {
			err := fileSystem.Remove("renamed.dump.gz")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			_, err = fileSystem.Stat("renamed.dump.gz")

			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("expected the file to be gone, got %v", err)
			}
		})

		t.Run("OpenMissing", func(t *testing.T) {
			_, err := fileSystem.Open("missing.dump.gz")

			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("expected fs.ErrNotExist, got %v", err)
			}
		})
	})
}
