//go:build unix

package bdsync

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// isTransient reports whether a failed read or write may simply be reissued.
func isTransient(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}
