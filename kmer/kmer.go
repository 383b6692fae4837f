// Package kmer implements the packed k-mer codec: a bidirectional mapping
// between strings over the {A, C, G, T} alphabet and dense 2-bit-per-symbol
// integers, plus single-edit neighbor generators that operate directly on the
// packed representation.
//
// The first symbol of a sequence occupies the highest 2-bit field, so the
// integer order of packed k-mers matches the lexicographic order of the
// sequences. All generators are parameterized by the current length and touch
// only the occupied fields; a length-ℓ code is a valid input for any ℓ ≤ 32.
package kmer

import (
	"fmt"
)

// MaxLen is the longest sequence that fits a 64-bit packed code at 2 bits per symbol.
const MaxLen = 32

// bases maps a 2-bit symbol value back to its letter.
var bases = [4]byte{'A', 'C', 'G', 'T'}

// Vertex identifies a packed sequence together with its length. The partition
// engine walks a domain that mixes three lengths (k-1, k, k+1); carrying the
// length explicitly avoids reserving tag bits inside the code.
type Vertex struct {
	Code uint64
	Len  int
}

// String decodes the vertex for diagnostics.
func (v Vertex) String() string {
	return Decode(v.Code, v.Len)
}

// ErrInvalidSymbol reports a byte outside the {A, C, G, T} alphabet.
type ErrInvalidSymbol struct {
	Symbol byte
	Pos    int
}

func (e *ErrInvalidSymbol) Error() string {
	return fmt.Sprintf("invalid symbol %q at position %d", e.Symbol, e.Pos)
}

// ErrLength reports a sequence that does not fit the packed representation.
type ErrLength struct {
	Len int
}

func (e *ErrLength) Error() string {
	return fmt.Sprintf("sequence length %d not in [1,%d]", e.Len, MaxLen)
}

// Encode packs a sequence into a 2-bit-per-symbol integer.
// Decode(Encode(s), len(s)) == s for any valid s.
func Encode(s string) (uint64, error) {
	if len(s) < 1 || len(s) > MaxLen {
		return 0, &ErrLength{Len: len(s)}
	}
	var enc uint64
	for i := 0; i < len(s); i++ {
		var x uint64
		switch s[i] {
		case 'A':
			x = 0
		case 'C':
			x = 1
		case 'G':
			x = 2
		case 'T':
			x = 3
		default:
			return 0, &ErrInvalidSymbol{Symbol: s[i], Pos: i}
		}
		enc = enc<<2 | x
	}
	return enc, nil
}

// Decode unpacks the low l fields of code into a sequence.
func Decode(code uint64, l int) string {
	buf := make([]byte, l)
	for i := l - 1; i >= 0; i-- {
		buf[i] = bases[code&3]
		code >>= 2
	}
	return string(buf)
}

// AppendSubstitutions appends the 4*l single-substitution candidates of a
// length-l code to dst and returns the extended slice. The identity value is
// regenerated once per position; callers filter it through their label-state
// check, so emitting it is cheaper than branching here.
func AppendSubstitutions(dst []uint64, code uint64, l int) []uint64 {
	for j := 0; j < l; j++ {
		shift := uint(2 * j)
		head := code >> (shift + 2) << (shift + 2)
		tail := code & (1<<shift - 1)
		for m := uint64(0); m < 4; m++ {
			dst = append(dst, head|m<<shift|tail)
		}
	}
	return dst
}

// AppendDeletions appends the l single-deletion results (length l-1) of a
// length-l code to dst and returns the extended slice.
func AppendDeletions(dst []uint64, code uint64, l int) []uint64 {
	for j := 0; j < l; j++ {
		shift := uint(2 * j)
		head := code >> (shift + 2) << shift
		tail := code & (1<<shift - 1)
		dst = append(dst, head|tail)
	}
	return dst
}

// AppendInsertions appends the 4*(l+1) single-insertion results (length l+1)
// of a length-l code to dst and returns the extended slice. l must be below
// MaxLen.
func AppendInsertions(dst []uint64, code uint64, l int) []uint64 {
	for j := 0; j <= l; j++ {
		shift := uint(2 * j)
		head := code >> shift << (shift + 2)
		tail := code & (1<<shift - 1)
		for m := uint64(0); m < 4; m++ {
			dst = append(dst, head|m<<shift|tail)
		}
	}
	return dst
}
