//go:build unix

package flock

import (
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReadOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"permission denied", &os.PathError{Op: "open", Path: "x.lock", Err: syscall.EACCES}, true},
		{"read-only file system", &os.PathError{Op: "open", Path: "x.lock", Err: syscall.EROFS}, true},
		{"fs permission", fs.ErrPermission, true},
		{"missing directory", &os.PathError{Op: "open", Path: "x.lock", Err: syscall.ENOENT}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, isReadOnly(tc.err))
		})
	}
}
