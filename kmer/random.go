package kmer

import (
	"math/rand"
)

// Random returns a uniformly random length-l code drawn from rng.
func Random(rng *rand.Rand, l int) uint64 {
	if l >= MaxLen {
		return rng.Uint64()
	}
	return rng.Uint64() & (1<<uint(2*l) - 1)
}

// RandomEdit applies n random single edits (substitution, insertion or
// deletion) to a length-l code and returns the resulting code and length.
// Substitutions always change the symbol, so each step moves to a genuine
// 1-neighbor; the resulting edit distance to the input is at most n.
// The length is kept within [1, MaxLen].
func RandomEdit(rng *rand.Rand, code uint64, l, n int) (uint64, int) {
	for ; n > 0; n-- {
		op := rng.Intn(3)
		if l == 1 && op == 2 {
			op = rng.Intn(2) // no deletions from a single symbol
		}
		if l == MaxLen && op == 1 {
			op = 0 // no room for an insertion
		}
		switch op {
		case 0: // substitution
			shift := uint(2 * rng.Intn(l))
			old := code >> shift & 3
			sym := (old + uint64(1+rng.Intn(3))) & 3
			code = code&^(3<<shift) | sym<<shift
		case 1: // insertion
			shift := uint(2 * rng.Intn(l+1))
			head := code >> shift << (shift + 2)
			tail := code & (1<<shift - 1)
			code = head | uint64(rng.Intn(4))<<shift | tail
			l++
		case 2: // deletion
			shift := uint(2 * rng.Intn(l))
			head := code >> (shift + 2) << shift
			tail := code & (1<<shift - 1)
			code = head | tail
			l--
		}
	}
	return code, l
}
