//go:build !unix

package main

import "os"

func statDevice(_ *os.File) (bool, uint64, error) {
	return false, 0, errUnsupportedPlatform
}
