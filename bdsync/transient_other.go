//go:build !unix

package bdsync

import (
	"syscall"

	"github.com/pkg/errors"
)

func isTransient(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}
