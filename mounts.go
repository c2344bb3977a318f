//go:build linux || darwin || freebsd || openbsd

package main

import (
	"strings"

	"github.com/moby/sys/mountinfo"
)

// mountPointOf returns where the block device rdev is mounted, or "" if it is not.
func mountPointOf(rdev uint64) (string, error) {
	mounts, err := mountinfo.GetMounts(deviceFilter(rdev))
	if err != nil {
		return "", err
	}
	if len(mounts) == 0 {
		return "", nil
	}
	return mounts[0].Mountpoint, nil
}

// deviceFilter keeps the first mount whose source is a node for rdev.
func deviceFilter(rdev uint64) mountinfo.FilterFunc {
	return func(m *mountinfo.Info) (skip, stop bool) {
		if !strings.HasPrefix(m.Source, "/dev/") || !isDeviceNode(m.Source, rdev) {
			return true, false
		}
		return false, true
	}
}
