package snapshots_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dbsnap/dbsnap/internal/test"
	"github.com/dbsnap/dbsnap/pkg/config"
	"github.com/dbsnap/dbsnap/pkg/snapshots"
	"github.com/google/uuid"
)

func TestRestoreLock(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		targetHash := uuid.NewString()

		t.Run("AcquireAndRelease", func(t *testing.T) {
			lock := snapshots.NewRestoreLock(targetHash)

			err := lock.Acquire()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			err = lock.Release()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			// Releasing again is a no-op.
			err = lock.Release()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("SecondAcquireFails", func(t *testing.T) {
			lock := snapshots.NewRestoreLock(targetHash)

			err := lock.Acquire()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			defer lock.Release()

			contender := snapshots.NewRestoreLock(targetHash)

			err = contender.Acquire()

			if !errors.Is(err, snapshots.ErrRestoreInProgress) {
				t.Errorf("expected ErrRestoreInProgress, got %v", err)
			}
		})

		t.Run("DistinctTargetsDoNotContend", func(t *testing.T) {
			first := snapshots.NewRestoreLock(targetHash)

			err := first.Acquire()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			defer first.Release()

			second := snapshots.NewRestoreLock(uuid.NewString())

			err = second.Acquire()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			second.Release()
		})

		t.Run("ReleaseAllowsReacquire", func(t *testing.T) {
			lock := snapshots.NewRestoreLock(targetHash)

			err := lock.Acquire()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			err = lock.Release()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			err = lock.Acquire()

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			lock.Release()
		})
	})
}

func TestRestoreLockStaleReclaim(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		targetHash := uuid.NewString()

		lock := snapshots.NewRestoreLock(targetHash)

		err := lock.Acquire()

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		t.Cleanup(func() {
			lock.Release()
		})

		// Age the lock file past the stale threshold as a crashed holder
		// would have left it.
		stale := time.Now().Add(-2 * time.Hour)

		err = os.Chtimes(lock.Path(), stale, stale)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		contender := snapshots.NewRestoreLock(targetHash)

		err = contender.Acquire()

		if err != nil {
			t.Fatalf("expected a stale lock to be reclaimed, got %v", err)
		}

		// The reclaimed lock is fresh; a further contender must not be able
		// to reclaim it again.
		latecomer := snapshots.NewRestoreLock(targetHash)

		err = latecomer.Acquire()

		if !errors.Is(err, snapshots.ErrRestoreInProgress) {
			t.Errorf("expected ErrRestoreInProgress, got %v", err)
		}

		contender.Release()
	})
}

func TestRestoreLockReclaimGuard(t *testing.T) {
	test.Run(t, func(c *config.Config) {
		targetHash := uuid.NewString()

		lock := snapshots.NewRestoreLock(targetHash)

		err := lock.Acquire()

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		t.Cleanup(func() {
			lock.Release()
		})

		stale := time.Now().Add(-2 * time.Hour)

		err = os.Chtimes(lock.Path(), stale, stale)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		t.Run("ActiveGuardBlocksReclaim", func(t *testing.T) {
			guardPath := lock.Path() + ".reclaim"

			err := os.WriteFile(guardPath, nil, 0640)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			defer os.Remove(guardPath)

			contender := snapshots.NewRestoreLock(targetHash)

			err = contender.Acquire()

			if !errors.Is(err, snapshots.ErrRestoreInProgress) {
				t.Errorf("expected ErrRestoreInProgress while the guard is held, got %v", err)
			}
		})

		t.Run("StaleGuardDoesNotBlockForever", func(t *testing.T) {
			guardPath := lock.Path() + ".reclaim"

			err := os.WriteFile(guardPath, nil, 0640)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			err = os.Chtimes(guardPath, stale, stale)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			contender := snapshots.NewRestoreLock(targetHash)

			// The first attempt clears the abandoned guard, the next one
			// reclaims the lock.
			err = contender.Acquire()

			if !errors.Is(err, snapshots.ErrRestoreInProgress) {
				t.Fatalf("expected ErrRestoreInProgress on the first attempt, got %v", err)
			}

			err = contender.Acquire()

			if err != nil {
				t.Fatalf("expected the reclaim to succeed once the guard is gone, got %v", err)
			}

			contender.Release()
		})
	})
}
