// Package bdsync copies the differing blocks of one block device onto another.
//
// A run reads both devices sequentially in units of a working block size, the
// least common multiple of the two native block sizes, and rewrites a target
// block only when its bytes differ from the source. The last block may be
// shorter when the source size is not a multiple of the working block size.
//
// Runs are strictly sequential and single-threaded. Any I/O failure stops the
// run and is returned to the caller; blocks already patched stay patched.
package bdsync
