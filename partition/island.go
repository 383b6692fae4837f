// Package partition grows labeled islands around seed centers by synchronized
// breadth-first expansion over the implicit single-edit graph of the k-mer
// space, quarantining vertices that sit too close to a foreign island into a
// gray buffer.
//
// The graph is never materialized: every frontier advance regenerates
// neighbors on demand from the packed codes. First discovery wins; ties
// between islands in the same round are broken by island order, which makes
// the output deterministic for a fixed center list but not distance-optimal.
package partition

import (
	"github.com/hupe1980/kmerlsh/kmer"
)

// State tracks an island's frontier lifecycle.
type State int

const (
	// Seeded means the frontier still holds the center (or clique members).
	Seeded State = iota
	// Expanding means at least one round has produced a non-empty frontier.
	Expanding
	// Exhausted means a round produced an empty frontier; the island
	// contributes nothing to subsequent rounds.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Seeded:
		return "Seeded"
	case Expanding:
		return "Expanding"
	case Exhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

// Island is the per-center BFS state. Only the current frontier persists
// across rounds.
type Island struct {
	index   int32
	members []uint64
	layer   []kmer.Vertex
	state   State
}

func newIsland(index int32, members []uint64, k int) *Island {
	layer := make([]kmer.Vertex, len(members))
	for i, code := range members {
		layer[i] = kmer.Vertex{Code: code, Len: k}
	}
	return &Island{
		index:   index,
		members: members,
		layer:   layer,
		state:   Seeded,
	}
}

// Index returns the island's label value.
func (isl *Island) Index() int32 { return isl.index }

// State returns the island's frontier state.
func (isl *Island) State() State { return isl.state }

// advance replaces the island's frontier with the next BFS radius. A
// generated vertex joins the new frontier iff its label cell is still
// Unassigned; the claim marks it Visited so no other island re-expands it.
//
// Length scope: a k-mer yields substitutions and deletions (plus insertions in
// the extended variant), a (k-1)-mer yields insertions only, a (k+1)-mer
// yields deletions only.
func (d *Driver) advance(isl *Island) {
	if len(isl.layer) == 0 {
		isl.state = Exhausted
		return
	}
	isl.state = Expanding

	k := d.cfg.K
	next := make([]kmer.Vertex, 0, len(isl.layer))
	for _, v := range isl.layer {
		switch v.Len {
		case k - 1:
			d.buf = kmer.AppendInsertions(d.buf[:0], v.Code, k-1)
			next = d.claim(d.buf, k, next)

		case k:
			if d.cfg.Extended {
				d.buf = kmer.AppendInsertions(d.buf[:0], v.Code, k)
				next = d.claim(d.buf, k+1, next)
			}
			d.buf = kmer.AppendDeletions(d.buf[:0], v.Code, k)
			next = d.claim(d.buf, k-1, next)
			d.buf = kmer.AppendSubstitutions(d.buf[:0], v.Code, k)
			next = d.claim(d.buf, k, next)

		case k + 1:
			d.buf = kmer.AppendDeletions(d.buf[:0], v.Code, k+1)
			next = d.claim(d.buf, k, next)
		}
	}

	isl.layer = next
	if len(next) == 0 {
		isl.state = Exhausted
	}
}

func (d *Driver) claim(codes []uint64, l int, next []kmer.Vertex) []kmer.Vertex {
	for _, code := range codes {
		v := kmer.Vertex{Code: code, Len: l}
		if d.store.TryClaim(v) {
			next = append(next, v)
		}
	}
	return next
}
