// Package lockfile guards against two deployment runs racing on the same
// service stack.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/sessionguard/stackctl/internal/core/domain"
)

// Lock is an advisory file lock held for the duration of a run.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the lock without blocking. A held lock returns
// domain.ErrLockHeld so callers can fail fast instead of queueing behind a
// running deploy.
func Acquire(path string) (*Lock, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create lock directory: %w", err)
		}
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s: %w", path, domain.ErrLockHeld)
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. Safe to call once at the end of a run.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
