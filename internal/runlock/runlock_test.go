package runlock_test

import (
	"strings"
	"testing"

	"nexafs/internal/runlock"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	first := runlock.New(dir)
	if err := first.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	second := runlock.New(dir)
	if err := second.Acquire(); err == nil {
		t.Fatal("expected second acquire to fail while lock is held")
	} else if !strings.Contains(err.Error(), "already running") {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestPathLivesInLockDir(t *testing.T) {
	dir := t.TempDir()
	lock := runlock.New(dir)
	if !strings.HasPrefix(lock.Path(), dir) {
		t.Fatalf("lock path %q not under %q", lock.Path(), dir)
	}
}
