// Package flock provides cross-platform advisory file locking.
//
// The work log store takes an exclusive lock on a sidecar "<log>.lock" file for
// the duration of each read, append, or rewrite. Nothing is held across
// prompts, so two worklog processes only serialise individual file operations.
//
// Usage:
//
//	lock, err := flock.Acquire(ctx, path+".lock", 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = lock.Release() }()
package flock
