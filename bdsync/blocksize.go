package bdsync

import "github.com/pkg/errors"

// GCD returns the greatest common divisor of two positive integers.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of two positive integers.
func LCM(a, b int) int {
	return a / GCD(a, b) * b
}

// WorkingBlockSize returns the smallest block size aligned to both native
// block sizes.
func WorkingBlockSize(a, b int) (int, error) {
	if a <= 0 || b <= 0 {
		return 0, errors.Wrapf(ErrInvalidBlockSize, "native block sizes %d and %d", a, b)
	}
	return LCM(a, b), nil
}
