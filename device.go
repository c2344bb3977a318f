package main

import (
	"os"

	"github.com/pkg/errors"

	"bdrsync/bdsync"
)

var (
	errNotBlockDevice      = errors.New("is not a block device")
	errSameDevice          = errors.New("same device")
	errTargetTooSmall      = errors.New("target device is smaller than source")
	errTargetMounted       = errors.New("target device is mounted")
	errUnsupportedPlatform = errors.New("block devices are not supported on this platform")
)

// device is an open block device with its probed geometry.
type device struct {
	path      string
	f         *os.File
	size      int64
	blockSize int
	rdev      uint64
}

func openDevice(path string, flag int) (*device, error) {
	f, err := os.OpenFile(path, flag|openNoatime, 0)
	if err != nil {
		return nil, err
	}
	d := &device{path: path, f: f}
	if err := d.probe(); err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func (d *device) probe() error {
	isBlock, rdev, err := statDevice(d.f)
	if err != nil {
		return errors.Wrapf(err, "%s: stat", d.path)
	}
	if !isBlock {
		return errors.Wrap(errNotBlockDevice, d.path)
	}
	d.rdev = rdev

	if d.size, err = getDeviceSize(d.f); err != nil {
		return errors.Wrapf(err, "%s: device size", d.path)
	}
	if d.blockSize, err = getBlockSize(d.f); err != nil {
		return errors.Wrapf(err, "%s: block size", d.path)
	}
	return nil
}

// devicePair is a source opened read-only and a target opened for writing
// (or read-only for a dry run).
type devicePair struct {
	src, dst *device
}

func openPair(srcPath, dstPath string, dryRun bool) (*devicePair, error) {
	src, err := openDevice(srcPath, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	flag := os.O_RDWR
	if dryRun {
		flag = os.O_RDONLY
	}
	dst, err := openDevice(dstPath, flag)
	if err != nil {
		src.f.Close()
		return nil, err
	}
	return &devicePair{src: src, dst: dst}, nil
}

func (p *devicePair) Close() error {
	srcErr := p.src.f.Close()
	if err := p.dst.f.Close(); err != nil {
		return errors.Wrapf(err, "%s: close", p.dst.path)
	}
	return srcErr
}

// checkPair refuses pairs that would corrupt the source or not fit on the target.
func checkPair(src, dst *device) error {
	if src.rdev == dst.rdev {
		return errors.Wrapf(errSameDevice, "%s and %s", src.path, dst.path)
	}
	if dst.size < src.size {
		return errors.Wrapf(errTargetTooSmall, "target %s (%d bytes), source %s (%d bytes)",
			dst.path, dst.size, src.path, src.size)
	}
	return nil
}

// checkNotMounted fails when a mounted filesystem lives on dst.
func checkNotMounted(dst *device) error {
	mnt, err := mountPointOf(dst.rdev)
	if err != nil {
		return errors.Wrap(err, "listing mounts")
	}
	if mnt != "" {
		return errors.Wrapf(errTargetMounted, "%s on %s (use --force to write anyway)", dst.path, mnt)
	}
	return nil
}

func (p *devicePair) source() bdsync.Source {
	return bdsync.Source{Name: p.src.path, R: p.src.f, BlockSize: p.src.blockSize, Size: p.src.size}
}

func (p *devicePair) target() bdsync.Target {
	return bdsync.Target{Name: p.dst.path, RW: p.dst.f, BlockSize: p.dst.blockSize}
}
