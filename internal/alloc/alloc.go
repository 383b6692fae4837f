// Package alloc backs the O(4^k) label arrays.
//
// For realistic k the arrays run into gigabytes, and a failed allocation is
// usually transient memory pressure on a shared machine rather than a logic
// error. The mapped variant therefore retries with back-off before giving up
// instead of aborting the run.
package alloc

import (
	"time"
)

var (
	// maxAttempts bounds the ENOMEM retry loop of the mapped allocator.
	maxAttempts = 10

	// sleep is swapped out by tests.
	sleep = time.Sleep
)

// Int32s returns a zeroed heap-allocated []int32 of length n and a release
// function. The release function exists for symmetry with Int32sMapped so the
// caller can treat both uniformly.
func Int32s(n int) ([]int32, func() error) {
	s := make([]int32, n)
	return s, func() error { return nil }
}

func backoff(attempt int) time.Duration {
	d := time.Second << uint(attempt)
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}
