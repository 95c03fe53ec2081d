package snapshots

import (
	"log/slog"
	"time"
)

// SelectForDeletion returns the names of records whose created_at is strictly
// older than now minus maxAgeDays. Comparison happens on parsed timestamps,
// never on the raw strings. Records whose timestamp cannot be parsed are
// never selected: a snapshot that cannot be age-verified is not auto-deleted.
func SelectForDeletion(records []Record, maxAgeDays int, now time.Time) []string {
	cutoff := now.AddDate(0, 0, -maxAgeDays)

	selected := make([]string, 0)

	for _, record := range records {
		createdAt, err := record.CreatedTime()

		if err != nil {
			slog.Warn(
				"Skipping snapshot with unparsable created_at",
				"snapshot", record.SnapshotName,
				"created_at", record.CreatedAt,
			)

			continue
		}

		if createdAt.Before(cutoff) {
			selected = append(selected, record.SnapshotName)
		}
	}

	return selected
}
