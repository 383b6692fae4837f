// Package sample estimates the collision behavior of a finished labeling by
// Monte Carlo: it draws random k-mer pairs at increasing edit distances and
// measures how often both endpoints carry the same center label. This is the
// empirical check that the labeling behaves like a locality-sensitive hash.
package sample

import (
	"math/rand"

	"github.com/hupe1980/kmerlsh/kmer"
)

// Result aggregates one edit-distance bucket.
type Result struct {
	// Edits is the number of random edits applied to derive the second
	// endpoint; the true edit distance of a pair is at most Edits.
	Edits int
	// Pairs is the bucket's sample size.
	Pairs int
	// BothLabeled counts pairs whose endpoints both carry a center label
	// (neither gray nor unreached).
	BothLabeled int
	// SameLabel counts pairs whose endpoints share a center label.
	SameLabel int
}

// CollisionRate is the fraction of sampled pairs sharing a center label.
func (r Result) CollisionRate() float64 {
	if r.Pairs == 0 {
		return 0
	}
	return float64(r.SameLabel) / float64(r.Pairs)
}

// Options configures a sampling run.
type Options struct {
	// Pairs per edit-distance bucket.
	Pairs int
	// MaxEdits is the largest bucket; defaults to k/2 + 1.
	MaxEdits int
	// Seed for the deterministic random source.
	Seed int64
}

// Run samples collision rates against the k-mer label array h (4^k cells, as
// produced by a partition run or re-read from a label file).
func Run(h []int32, k int, optFns ...func(*Options)) []Result {
	o := Options{
		Pairs:    100000,
		MaxEdits: k/2 + 1,
		Seed:     1,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	rng := rand.New(rand.NewSource(o.Seed))
	results := make([]Result, 0, o.MaxEdits)

	for edits := 1; edits <= o.MaxEdits; edits++ {
		res := Result{Edits: edits, Pairs: o.Pairs}
		for i := 0; i < o.Pairs; i++ {
			s := kmer.Random(rng, k)
			t := mutateSameLength(rng, s, k, edits)

			hs, ht := h[s], h[t]
			if hs >= 0 && ht >= 0 {
				res.BothLabeled++
				if hs == ht {
					res.SameLabel++
				}
			}
		}
		results = append(results, res)
	}

	return results
}

// mutateSameLength applies n random edits and redraws until the walk ends
// back at length k, so the pair can be looked up in the same label array.
func mutateSameLength(rng *rand.Rand, s uint64, k, n int) uint64 {
	for {
		t, l := kmer.RandomEdit(rng, s, k, n)
		if l == k {
			return t
		}
	}
}
