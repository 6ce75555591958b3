package flock

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mrz1836/worklog/internal/constants"
	wlerrors "github.com/mrz1836/worklog/internal/errors"
)

// lockFilePerm is the permission used when the lock file has to be created.
const lockFilePerm = 0o600

// Lock is a held lock on a file.
type Lock struct {
	f *os.File
}

// Acquire opens (creating if needed) the file at path and takes an exclusive
// lock on it, retrying every constants.LockRetryInterval until timeout.
// A non-positive timeout means a single attempt.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFilePerm) //#nosec G304 -- path derives from the configured work log
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	return wait(ctx, f, path, timeout, Exclusive)
}

// AcquireShared takes a shared lock on the file at path. Shared holders
// exclude exclusive ones but not each other.
//
// When the lock file does not exist and cannot be created (read-only
// directory or file system), AcquireShared returns a nil Lock and no error:
// no writer can create the file either, so there is nothing to wait for.
func AcquireShared(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFilePerm) //#nosec G304 -- path derives from the configured work log
	if err != nil && isReadOnly(err) {
		f, err = os.Open(path) //#nosec G304 -- path derives from the configured work log
		if err != nil && (os.IsNotExist(err) || isReadOnly(err)) {
			return nil, nil //nolint:nilnil // unlocked read, see above
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	return wait(ctx, f, path, timeout, Shared)
}

// wait polls tryLock on f until it succeeds, ctx is done or timeout passes.
// f is closed unless a Lock is returned.
func wait(ctx context.Context, f *os.File, path string, timeout time.Duration, tryLock func(uintptr) error) (*Lock, error) {
	deadline := time.Now().Add(timeout)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		default:
		}

		if err := tryLock(f.Fd()); err == nil {
			return &Lock{f: f}, nil
		}

		if !time.Now().Before(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("failed to lock %s: %w", path, wlerrors.ErrLockTimeout)
		}

		time.Sleep(constants.LockRetryInterval)
	}
}

// Release unlocks and closes the lock file. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil

	if err := Unlock(f.Fd()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}
