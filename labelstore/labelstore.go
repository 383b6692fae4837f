// Package labelstore holds the per-length label arrays of a partition run.
//
// Each cell goes through the transitions Unassigned -> Visited -> {Gray |
// center index} exactly once. Claims (Unassigned -> Visited) are issued by the
// frontier engine in island order; commits (Visited -> final) may race across
// workers resolving the same layer, so both are compare-and-set operations and
// reads are atomic. A commit that observes anything but Visited indicates the
// state machine was broken and panics rather than masking the defect.
package labelstore

import (
	"fmt"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/kmerlsh/internal/alloc"
	"github.com/hupe1980/kmerlsh/kmer"
)

// Label states. Values >= 0 are center indices.
const (
	Unassigned int32 = -3
	Visited    int32 = -2
	Gray       int32 = -1
)

// DefaultMmapThreshold is the array byte size above which cells are backed by
// an anonymous memory mapping instead of the Go heap.
const DefaultMmapThreshold = 1 << 30

// Options configures a Store.
type Options struct {
	// Extended labels the (k-1)- and (k+1)-mer populations in addition to the
	// k-mers. Without it, (k-1)-mers are only tracked as claimed bits and
	// (k+1)-mers are out of scope.
	Extended bool

	// MmapThreshold is the per-array byte size at which allocation switches to
	// an anonymous memory mapping with ENOMEM back-off retry.
	MmapThreshold int
}

// Store maps packed codes of lengths k-1, k and k+1 to labels.
type Store struct {
	k        int
	extended bool

	h   []int32 // k-mers, 4^k cells
	hm1 []int32 // (k-1)-mers, extended only
	hp1 []int32 // (k+1)-mers, extended only

	claimed *roaring64.Bitmap // (k-1)-mers in the k-only variant

	releases []func() error
}

// ErrKOutOfRange reports a k the packed domain cannot address.
type ErrKOutOfRange struct {
	K        int
	Extended bool
}

func (e *ErrKOutOfRange) Error() string {
	return fmt.Sprintf("k=%d out of range [1,%d] (extended=%v)", e.K, maxK(e.Extended), e.Extended)
}

// maxK bounds k so the flat arrays stay addressable by int: 4^31 cells is the
// ceiling, and the extended variant additionally needs a (k+1)-mer array.
func maxK(extended bool) int {
	if extended {
		return kmer.MaxLen - 2
	}
	return kmer.MaxLen - 1
}

// New allocates a Store for the given k with every cell Unassigned.
func New(k int, optFns ...func(*Options)) (*Store, error) {
	o := Options{
		MmapThreshold: DefaultMmapThreshold,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if k < 1 || k > maxK(o.Extended) {
		return nil, &ErrKOutOfRange{K: k, Extended: o.Extended}
	}

	s := &Store{
		k:        k,
		extended: o.Extended,
	}

	var err error
	if s.h, err = s.newArray(k, o.MmapThreshold); err != nil {
		s.Close()
		return nil, err
	}
	if o.Extended {
		if s.hm1, err = s.newArray(k-1, o.MmapThreshold); err != nil {
			s.Close()
			return nil, err
		}
		if s.hp1, err = s.newArray(k+1, o.MmapThreshold); err != nil {
			s.Close()
			return nil, err
		}
	} else {
		s.claimed = roaring64.New()
	}

	return s, nil
}

func (s *Store) newArray(l, mmapThreshold int) ([]int32, error) {
	cells := 1 << uint(2*l)

	var arr []int32
	if cells*4 >= mmapThreshold {
		mapped, release, err := alloc.Int32sMapped(cells)
		if err != nil {
			return nil, fmt.Errorf("label array for length %d: %w", l, err)
		}
		arr = mapped
		s.releases = append(s.releases, release)
	} else {
		var release func() error
		arr, release = alloc.Int32s(cells)
		s.releases = append(s.releases, release)
	}

	for i := range arr {
		arr[i] = Unassigned
	}
	return arr, nil
}

// K returns the base length of the store.
func (s *Store) K() int { return s.k }

// Extended reports whether the (k-1)- and (k+1)-mer populations carry labels.
func (s *Store) Extended() bool { return s.extended }

// Array exposes the label array for length l (k-1, k or k+1) for
// serialization. The returned slice is the live backing array; callers must
// not mutate it. It is nil for lengths the store does not label.
func (s *Store) Array(l int) []int32 {
	switch l {
	case s.k:
		return s.h
	case s.k - 1:
		return s.hm1
	case s.k + 1:
		return s.hp1
	}
	return nil
}

func (s *Store) cell(v kmer.Vertex) *int32 {
	switch v.Len {
	case s.k:
		return &s.h[v.Code]
	case s.k - 1:
		if s.hm1 != nil {
			return &s.hm1[v.Code]
		}
	case s.k + 1:
		if s.hp1 != nil {
			return &s.hp1[v.Code]
		}
	}
	return nil
}

// Get returns the current label of v. In the k-only variant a claimed
// (k-1)-mer reads as Visited and an unclaimed one as Unassigned.
func (s *Store) Get(v kmer.Vertex) int32 {
	if c := s.cell(v); c != nil {
		return atomic.LoadInt32(c)
	}
	if v.Len == s.k-1 && s.claimed != nil {
		if s.claimed.Contains(v.Code) {
			return Visited
		}
		return Unassigned
	}
	panic(fmt.Sprintf("labelstore: length %d out of scope for k=%d", v.Len, s.k))
}

// TryClaim transitions v from Unassigned to Visited and reports whether this
// call won the claim. Claims are only issued from the frontier engine; the
// k-only claimed set for (k-1)-mers is not safe for concurrent claimers.
func (s *Store) TryClaim(v kmer.Vertex) bool {
	if c := s.cell(v); c != nil {
		return atomic.CompareAndSwapInt32(c, Unassigned, Visited)
	}
	if v.Len == s.k-1 && s.claimed != nil {
		return s.claimed.CheckedAdd(v.Code)
	}
	panic(fmt.Sprintf("labelstore: length %d out of scope for k=%d", v.Len, s.k))
}

// Commit finalizes v with label, which must be Gray or a center index. The
// cell must currently be Visited; anything else means a vertex was resolved
// twice or never claimed, which compromises the distance guarantees.
func (s *Store) Commit(v kmer.Vertex, label int32) {
	if label < Gray {
		panic(fmt.Sprintf("labelstore: commit of non-final label %d", label))
	}
	c := s.cell(v)
	if c == nil {
		panic(fmt.Sprintf("labelstore: commit for unlabeled length %d", v.Len))
	}
	if !atomic.CompareAndSwapInt32(c, Visited, label) {
		panic(fmt.Sprintf("labelstore: %s in state %d, want Visited", v, atomic.LoadInt32(c)))
	}
}

// ErrDuplicateCenter reports a seed k-mer that appears in more than one
// center record.
type ErrDuplicateCenter struct {
	Code  uint64
	K     int
	Index int32
}

func (e *ErrDuplicateCenter) Error() string {
	return fmt.Sprintf("center %s already labeled %d", kmer.Decode(e.Code, e.K), e.Index)
}

// Seed pre-labels a center k-mer with its island index before the BFS starts.
func (s *Store) Seed(code uint64, index int32) error {
	if !atomic.CompareAndSwapInt32(&s.h[code], Unassigned, index) {
		return &ErrDuplicateCenter{Code: code, K: s.k, Index: atomic.LoadInt32(&s.h[code])}
	}
	return nil
}

// Close releases any mapped label arrays.
func (s *Store) Close() error {
	var err error
	for _, release := range s.releases {
		if e := release(); e != nil && err == nil {
			err = e
		}
	}
	s.releases = nil
	return err
}
