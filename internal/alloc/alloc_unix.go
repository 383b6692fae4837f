//go:build !windows

package alloc

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Int32sMapped returns a zeroed []int32 of length n backed by an anonymous
// memory mapping, plus a release function that unmaps it. ENOMEM is retried
// with back-off up to maxAttempts times; any other mmap failure is returned
// immediately.
func Int32sMapped(n int) ([]int32, func() error, error) {
	if n == 0 {
		return nil, func() error { return nil }, nil
	}
	size := n * 4

	var data []byte
	var err error
	for attempt := 0; ; attempt++ {
		data, err = unix.Mmap(-1, 0, size,
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_ANON|unix.MAP_PRIVATE)
		if err == nil {
			break
		}
		if !errors.Is(err, unix.ENOMEM) || attempt+1 >= maxAttempts {
			return nil, nil, fmt.Errorf("mmap %d bytes: %w", size, err)
		}
		sleep(backoff(attempt))
	}

	s := unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), n)
	release := func() error {
		return unix.Munmap(data)
	}
	return s, release, nil
}
