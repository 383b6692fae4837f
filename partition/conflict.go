package partition

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/kmerlsh/editdist"
	"github.com/hupe1980/kmerlsh/kmer"
	"github.com/hupe1980/kmerlsh/labelstore"
)

// ConflictChecker decides whether a freshly discovered vertex sits too close
// to an island other than its owner. Implementations must be safe for
// concurrent calls; they only read final labels and never write the store.
type ConflictChecker interface {
	// IsConflicting reports whether v, discovered at the given radius from
	// its owning island, must be quarantined into the gray buffer.
	IsConflicting(v kmer.Vertex, owner int32, radius int) bool
}

// NeighborProbe detects conflicts with a fresh bounded BFS from the vertex: it
// walks all single-edit neighbors out to depth p-1 and declares a conflict as
// soon as any reached vertex carries a final label of a foreign island. It
// needs no precomputation but repeats work per vertex.
type NeighborProbe struct {
	store *labelstore.Store
	k     int
	depth int
}

// NewNeighborProbe builds the probe strategy for sensitivity radius p.
func NewNeighborProbe(store *labelstore.Store, p int) *NeighborProbe {
	return &NeighborProbe{
		store: store,
		k:     store.K(),
		depth: p - 1,
	}
}

// IsConflicting implements ConflictChecker.
//
// The probe keeps its own visited set (one bitmap per length in scope),
// independent of the store's Visited marks: the store tracks island
// expansion, whereas this walk is a read-only proximity test.
func (np *NeighborProbe) IsConflicting(v kmer.Vertex, owner int32, _ int) bool {
	if np.depth <= 0 {
		return false
	}

	var visited [3]*roaring64.Bitmap // indexed by length - (k-1)
	for i := range visited {
		visited[i] = roaring64.New()
	}
	visited[v.Len-np.k+1].Add(v.Code)

	k := np.k
	extended := np.store.Extended()
	cur := []kmer.Vertex{v}
	var next []kmer.Vertex
	var buf []uint64

	// examine checks one candidate: conflict on a foreign final label,
	// otherwise enqueue it if unseen. In the k-only variant (k-1)-mers carry
	// no labels and can never conflict, but they are still traversed so the
	// probe can cross back into the k domain.
	examine := func(code uint64, l int) bool {
		x := kmer.Vertex{Code: code, Len: l}
		if final := np.store.Get(x); final >= 0 && final != owner {
			return true
		}
		if visited[l-k+1].CheckedAdd(code) {
			next = append(next, x)
		}
		return false
	}

	for depth := np.depth; depth > 0; depth-- {
		for _, s := range cur {
			switch s.Len {
			case k - 1:
				buf = kmer.AppendInsertions(buf[:0], s.Code, k-1)
				for _, code := range buf {
					if examine(code, k) {
						return true
					}
				}

			case k:
				if extended {
					buf = kmer.AppendInsertions(buf[:0], s.Code, k)
					for _, code := range buf {
						if examine(code, k+1) {
							return true
						}
					}
				}
				buf = kmer.AppendDeletions(buf[:0], s.Code, k)
				for _, code := range buf {
					if examine(code, k-1) {
						return true
					}
				}
				buf = kmer.AppendSubstitutions(buf[:0], s.Code, k)
				for _, code := range buf {
					if examine(code, k) {
						return true
					}
				}

			case k + 1:
				buf = kmer.AppendDeletions(buf[:0], s.Code, k+1)
				for _, code := range buf {
					if examine(code, k) {
						return true
					}
				}
			}
		}
		cur, next = next, cur[:0]
	}

	return false
}

// CenterList detects conflicts against a precomputed neighbor list: for every
// island it stores the other islands within distance p+q, sorted from closest
// to farthest. By the triangle inequality an island farther than p+q can
// never threaten a vertex within radius q/2, so the number of distance
// computations per vertex is bounded by the local center density instead of
// the total center count.
type CenterList struct {
	k       int
	p       int
	members [][]uint64
	near    [][]int32
}

// NewCenterList precomputes the neighbor lists for all islands. For clique
// seeds the island-to-island distance is the minimum over member pairs.
func NewCenterList(islands [][]uint64, k, p, q int) *CenterList {
	cl := &CenterList{
		k:       k,
		p:       p,
		members: islands,
		near:    make([][]int32, len(islands)),
	}

	limit := p + q
	dists := make([][]int, len(islands))
	for i := range dists {
		dists[i] = make([]int, len(islands))
	}
	for i := range islands {
		for j := i + 1; j < len(islands); j++ {
			d := cl.islandDist(islands[i], islands[j])
			dists[i][j], dists[j][i] = d, d
			if d <= limit {
				cl.near[i] = append(cl.near[i], int32(j))
				cl.near[j] = append(cl.near[j], int32(i))
			}
		}
	}

	// Closest threats first; ties broken by index to keep runs reproducible.
	for i := range cl.near {
		near := cl.near[i]
		sort.Slice(near, func(a, b int) bool {
			da, db := dists[i][near[a]], dists[i][near[b]]
			if da != db {
				return da < db
			}
			return near[a] < near[b]
		})
	}

	return cl
}

func (cl *CenterList) islandDist(a, b []uint64) int {
	best := -1
	for _, s := range a {
		for _, t := range b {
			d := editdist.Distance(s, cl.k, t, cl.k, -1)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return best
}

// IsConflicting implements ConflictChecker: a neighbor island whose center is
// closer than radius+p to v could have claimed a vertex within p-1 of v, so v
// must go gray.
func (cl *CenterList) IsConflicting(v kmer.Vertex, owner int32, radius int) bool {
	bound := radius + cl.p
	for _, j := range cl.near[owner] {
		for _, c := range cl.members[j] {
			if editdist.Distance(v.Code, v.Len, c, cl.k, bound) < bound {
				return true
			}
		}
	}
	return false
}
