package snapshots

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqids/sqids-go"
)

// Rendered in place of metadata fields that cannot be resolved, for example
// when a payload has no metadata sidecar.
const Unknown = "Unknown"

// A Record describes one snapshot: what was captured, when, and how large the
// payload was at creation time. Timestamps are serialized as RFC 3339 UTC
// strings at second precision.
type Record struct {
	SnapshotID   string `json:"snapshot_id"`
	SnapshotName string `json:"snapshot_name"`
	CreatedAt    string `json:"created_at"`
	Database     string `json:"database"`
	Container    string `json:"container"`
	SizeBytes    int64  `json:"size_bytes"`
}

func NewRecord(name, database, container string, sizeBytes int64) Record {
	return Record{
		SnapshotID:   uuid.NewString(),
		SnapshotName: name,
		CreatedAt:    time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Database:     database,
		Container:    container,
		SizeBytes:    sizeBytes,
	}
}

// UnknownRecord is the sentinel attached to payloads that have no readable
// metadata. Listing degrades to "Unknown" fields instead of failing.
func UnknownRecord(name string) Record {
	return Record{
		SnapshotName: name,
		CreatedAt:    Unknown,
		Database:     Unknown,
		Container:    Unknown,
		SizeBytes:    -1,
	}
}

// CreatedTime parses the stored timestamp. Age comparisons must go through
// this instead of comparing the raw strings.
func (r Record) CreatedTime() (time.Time, error) {
	return time.Parse(time.RFC3339, r.CreatedAt)
}

func (r Record) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// DefaultName derives a snapshot name from the given time plus a short
// encoded suffix so two snapshots created within the same second cannot
// collide.
func DefaultName(now time.Time) string {
	s, _ := sqids.New(sqids.Options{
		Alphabet:  "0123456789abcdefghijklmnopqrstuvwxyz",
		MinLength: 6,
	})

	suffix, err := s.Encode([]uint64{uint64(now.UnixNano())})

	if err != nil {
		suffix = uuid.NewString()[:6]
	}

	return now.UTC().Format("20060102-150405") + "-" + suffix
}
