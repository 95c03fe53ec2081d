package snapshots

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// A lock left behind by a crashed process is reclaimed after this age.
const lockStaleAfter = time.Hour

// RestoreLock is an advisory file lock keyed by the target identity. The
// restore swap spans multiple external calls, so a second restore or create
// racing the temp and backup names must fail fast instead of interleaving.
type RestoreLock struct {
	path string
}

func NewRestoreLock(targetHash string) *RestoreLock {
	return &RestoreLock{
		path: filepath.Join(os.TempDir(), fmt.Sprintf("dbsnap-restore-%s.lock", targetHash)),
	}
}

// Path returns the location of the lock file.
func (l *RestoreLock) Path() string {
	return l.path
}

func (l *RestoreLock) Acquire() error {
	for attempt := 0; attempt < 2; attempt++ {
		file, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0640)

		if err == nil {
			fmt.Fprintf(file, "%d\n", os.Getpid())

			return file.Close()
		}

		if !os.IsExist(err) {
			return err
		}

		if !l.reclaim() {
			return ErrRestoreInProgress
		}
	}

	return ErrRestoreInProgress
}

func (l *RestoreLock) Release() error {
	err := os.Remove(l.path)

	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// reclaim removes the lock file when it is stale and reports whether the
// caller may retry its exclusive create. Removal only happens while holding
// a second exclusive guard file: without it, two contenders could both
// observe a stale lock and the slower one would remove the fresh lock the
// faster one just created.
func (l *RestoreLock) reclaim() bool {
	info, err := os.Stat(l.path)

	if err != nil {
		// Released or reclaimed since the failed create.
		return os.IsNotExist(err)
	}

	if time.Since(info.ModTime()) < lockStaleAfter {
		return false
	}

	guardPath := l.path + ".reclaim"

	guard, err := os.OpenFile(guardPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0640)

	if err != nil {
		// A guard left behind by a crashed reclaimer would block every
		// future reclaim, so a stale guard is removed for the next attempt.
		if os.IsExist(err) {
			if guardInfo, statErr := os.Stat(guardPath); statErr == nil && time.Since(guardInfo.ModTime()) >= lockStaleAfter {
				os.Remove(guardPath)
			}
		}

		return false
	}

	guard.Close()

	defer os.Remove(guardPath)

	// Re-check under the guard: the lock may have been reclaimed and
	// recreated fresh between the first stat and the guard creation.
	info, err = os.Stat(l.path)

	if err != nil {
		return os.IsNotExist(err)
	}

	if time.Since(info.ModTime()) < lockStaleAfter {
		return false
	}

	slog.Warn("Removing stale restore lock", "path", l.path, "age", time.Since(info.ModTime()))

	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return false
	}

	return true
}
