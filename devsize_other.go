//go:build !linux && !darwin

package main

import "os"

const openNoatime = 0

func getDeviceSize(_ *os.File) (int64, error) {
	return 0, errUnsupportedPlatform
}

func getBlockSize(_ *os.File) (int, error) {
	return 0, errUnsupportedPlatform
}
