//go:build darwin

package main

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const openNoatime = 0

const (
	dkiocGetBlockSize  = 0x40046418 // _IOR('d', 24, uint32)
	dkiocGetBlockCount = 0x40086419 // _IOR('d', 25, uint64)
)

func getDeviceSize(f *os.File) (int64, error) {
	bs, err := getBlockSize(f)
	if err != nil {
		return 0, err
	}
	var count uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), dkiocGetBlockCount, uintptr(unsafe.Pointer(&count)))
	if errno != 0 {
		return 0, errno
	}
	return int64(bs) * int64(count), nil
}

func getBlockSize(f *os.File) (int, error) {
	return unix.IoctlGetInt(int(f.Fd()), dkiocGetBlockSize)
}
