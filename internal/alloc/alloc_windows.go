//go:build windows

package alloc

// Int32sMapped falls back to a heap allocation on platforms without anonymous
// mmap support.
func Int32sMapped(n int) ([]int32, func() error, error) {
	s, release := Int32s(n)
	return s, release, nil
}
