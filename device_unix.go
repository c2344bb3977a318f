//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// statDevice reports whether f is a block device and returns its device number.
func statDevice(f *os.File) (isBlock bool, rdev uint64, err error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return false, 0, err
	}
	return uint32(st.Mode)&unix.S_IFMT == unix.S_IFBLK, uint64(st.Rdev), nil
}

// isDeviceNode reports whether path is a block device node for rdev.
func isDeviceNode(path string, rdev uint64) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return uint32(st.Mode)&unix.S_IFMT == unix.S_IFBLK && uint64(st.Rdev) == rdev
}
