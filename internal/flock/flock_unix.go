//go:build unix

package flock

import (
	stderrors "errors"
	"os"
	"syscall"
)

// Exclusive acquires an exclusive non-blocking lock on the file descriptor.
// Returns an error if the lock cannot be acquired immediately.
func Exclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

// Shared acquires a shared non-blocking lock on the file descriptor.
// Returns an error if an exclusive lock is held.
func Shared(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_SH|syscall.LOCK_NB)
}

// Unlock releases the lock on the file descriptor.
func Unlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}

// isReadOnly reports open errors caused by a directory or file system that
// does not accept writes.
func isReadOnly(err error) bool {
	return os.IsPermission(err) || stderrors.Is(err, syscall.EROFS)
}
