// Package filelock provides advisory file locking so that concurrent
// tasktrack processes do not interleave read-modify-write cycles on the
// same board.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	lockFileMode      = 0o600
	lockRetryInterval = 10 * time.Millisecond
)

// errWouldBlock is returned by tryLockFile when another holder has the lock.
var errWouldBlock = errors.New("filelock: lock held elsewhere")

// Lock is a held advisory lock.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive advisory lock on the file at path, creating
// it if needed. It polls until the lock is free or ctx is done.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	for {
		err := tryLockFile(f)
		if err == nil {
			return &Lock{f: f}, nil
		}
		if !errors.Is(err, errWouldBlock) {
			_ = f.Close()
			return nil, fmt.Errorf("locking %s: %w", path, err)
		}
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, fmt.Errorf("waiting for lock on %s: %w", path, ctx.Err())
		case <-time.After(lockRetryInterval):
		}
	}
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
