package snapshots

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dbsnap/dbsnap/pkg/storage"
	"github.com/klauspost/compress/gzip"
)

const (
	MetadataExtension = ".json"
	PayloadExtension  = ".dump.gz"
)

// An Entry pairs a stored payload with its metadata record, or with the
// Unknown sentinel when no metadata could be read.
type Entry struct {
	Name   string
	Record Record
}

// The Store persists snapshot payloads and metadata records, one pair of
// files per snapshot name. Payloads are gzip compressed; recorded sizes are
// the uncompressed byte counts.
type Store struct {
	fs *storage.FileSystem
}

func NewStore(fs *storage.FileSystem) (*Store, error) {
	err := fs.MkdirAll("", 0750)

	if err != nil {
		return nil, fmt.Errorf("error creating snapshot directory: %w", err)
	}

	return &Store{fs: fs}, nil
}

// Delete removes the payload and metadata for a name. Missing files are not
// an error at this layer; callers enforce existence where it matters.
func (s *Store) Delete(name string) error {
	err := s.fs.Remove(name + PayloadExtension)

	if err != nil && !os.IsNotExist(err) {
		return err
	}

	err = s.fs.Remove(name + MetadataExtension)

	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// Exists reports whether a payload is stored under the name. Metadata without
// a payload does not count as an existing snapshot.
func (s *Store) Exists(name string) bool {
	_, err := s.fs.Stat(name + PayloadExtension)

	return err == nil
}

func (s *Store) GetMetadata(name string) (Record, error) {
	data, err := s.fs.ReadFile(name + MetadataExtension)

	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, ErrSnapshotNotFound
		}

		return Record{}, err
	}

	var record Record

	err = json.Unmarshal(data, &record)

	if err != nil {
		return Record{}, fmt.Errorf("error parsing metadata for snapshot %q: %w", name, err)
	}

	return record, nil
}

// List enumerates all stored payloads in name order, attaching metadata where
// present. Missing or malformed metadata degrades to the Unknown sentinel and
// never fails the listing.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := s.fs.ReadDir("")

	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), PayloadExtension) {
			continue
		}

		name := strings.TrimSuffix(dirEntry.Name(), PayloadExtension)

		record, err := s.GetMetadata(name)

		if err != nil {
			if err != ErrSnapshotNotFound {
				slog.Warn("Unreadable snapshot metadata", "snapshot", name, "error", err)
			}

			record = UnknownRecord(name)
		}

		entries = append(entries, Entry{Name: name, Record: record})
	}

	return entries, nil
}

// Open returns a reader over the uncompressed payload bytes.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	file, err := s.fs.Open(name + PayloadExtension)

	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotNotFound
		}

		return nil, err
	}

	gzipReader, err := gzip.NewReader(file)

	if err != nil {
		file.Close()

		return nil, fmt.Errorf("error reading snapshot payload %q: %w", name, err)
	}

	return &payloadReader{gzipReader: gzipReader, file: file}, nil
}

// Put writes the payload under the name and returns the number of
// uncompressed bytes stored. The payload is published before any metadata is
// written so a reader can never observe metadata without its payload.
func (s *Store) Put(name string, payload io.Reader) (int64, error) {
	file, err := s.fs.Create(name + PayloadExtension)

	if err != nil {
		return 0, fmt.Errorf("error creating snapshot payload: %w", err)
	}

	gzipWriter := gzip.NewWriter(file)

	size, err := io.Copy(gzipWriter, payload)

	if err == nil {
		err = gzipWriter.Close()
	}

	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		// Remove the partial payload so it cannot surface in a listing.
		if removeErr := s.fs.Remove(name + PayloadExtension); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Error("Error removing partial snapshot payload", "snapshot", name, "error", removeErr)
		}

		return 0, err
	}

	return size, nil
}

// WriteMetadata persists the sidecar record for a snapshot. It is written
// independently of the payload so a crash between the two leaves a payload
// that still lists, with Unknown fields.
func (s *Store) WriteMetadata(record Record) error {
	data, err := record.MarshalIndent()

	if err != nil {
		return err
	}

	return s.fs.WriteFile(record.SnapshotName+MetadataExtension, data, 0640)
}

type payloadReader struct {
	gzipReader *gzip.Reader
	file       io.ReadCloser
}

func (r *payloadReader) Read(p []byte) (int, error) {
	return r.gzipReader.Read(p)
}

func (r *payloadReader) Close() error {
	err := r.gzipReader.Close()

	if closeErr := r.file.Close(); err == nil {
		err = closeErr
	}

	return err
}
