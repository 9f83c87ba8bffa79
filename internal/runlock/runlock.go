// Package runlock serializes scan runs that share a log directory so their
// log output does not interleave.
package runlock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "nexafs.lock"

// Lock is a file-based advisory lock scoped to a log directory.
type Lock struct {
	path string
	fl   *flock.Flock
}

// New creates a lock rooted in dir. The lock file is created on Acquire.
func New(dir string) *Lock {
	path := filepath.Join(dir, lockFileName)
	return &Lock{path: path, fl: flock.New(path)}
}

// Acquire takes the lock without blocking. A held lock is an error: the
// caller should let the other run finish rather than wait.
func (l *Lock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire scan lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("another scan is already running (lock %s is held)", l.path)
	}
	return nil
}

// Release drops the lock. Safe to call after a failed Acquire.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
