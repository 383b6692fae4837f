package kmer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmerlsh/editdist"
)

func TestEncodeDecode(t *testing.T) {
	t.Run("KnownValues", func(t *testing.T) {
		tests := []struct {
			seq  string
			code uint64
		}{
			{"A", 0},
			{"C", 1},
			{"G", 2},
			{"T", 3},
			{"AA", 0},
			{"AC", 1},
			{"CA", 4},
			{"ACGT", 0b00_01_10_11},
			{"TTTT", 0xff},
		}
		for _, tt := range tests {
			code, err := Encode(tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.code, code, tt.seq)
			assert.Equal(t, tt.seq, Decode(code, len(tt.seq)))
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for l := 1; l <= 20; l++ {
			for i := 0; i < 200; i++ {
				code := Random(rng, l)
				seq := Decode(code, l)
				require.Len(t, seq, l)

				back, err := Encode(seq)
				require.NoError(t, err)
				assert.Equal(t, code, back)
			}
		}
	})

	t.Run("LexicographicOrder", func(t *testing.T) {
		// Integer order of packed codes matches string order at equal length.
		prev := ""
		for code := uint64(0); code < 1<<6; code++ {
			seq := Decode(code, 3)
			assert.Less(t, prev, seq)
			prev = seq
		}
	})

	t.Run("InvalidSymbol", func(t *testing.T) {
		_, err := Encode("ACGN")
		var symErr *ErrInvalidSymbol
		require.ErrorAs(t, err, &symErr)
		assert.Equal(t, byte('N'), symErr.Symbol)
		assert.Equal(t, 3, symErr.Pos)
	})

	t.Run("InvalidLength", func(t *testing.T) {
		_, err := Encode("")
		var lenErr *ErrLength
		require.ErrorAs(t, err, &lenErr)

		long := make([]byte, MaxLen+1)
		for i := range long {
			long[i] = 'A'
		}
		_, err = Encode(string(long))
		require.ErrorAs(t, err, &lenErr)
	})

	t.Run("MaxLen", func(t *testing.T) {
		seq := "TGCATGCATGCATGCATGCATGCATGCATGCA"
		require.Len(t, seq, MaxLen)
		code, err := Encode(seq)
		require.NoError(t, err)
		assert.Equal(t, seq, Decode(code, MaxLen))
	})
}

func TestAppendSubstitutions(t *testing.T) {
	code, err := Encode("ACGT")
	require.NoError(t, err)

	out := AppendSubstitutions(nil, code, 4)
	require.Len(t, out, 16)

	identity := 0
	for _, c := range out {
		if c == code {
			identity++
			continue
		}
		d := editdist.Distance(c, 4, code, 4, -1)
		assert.Equal(t, 1, d, "candidate %s", Decode(c, 4))
	}
	// One identity candidate per position.
	assert.Equal(t, 4, identity)
}

func TestAppendDeletions(t *testing.T) {
	code, err := Encode("ACGT")
	require.NoError(t, err)

	out := AppendDeletions(nil, code, 4)
	require.Len(t, out, 4)

	want := map[string]bool{"ACG": true, "ACT": true, "AGT": true, "CGT": true}
	for _, c := range out {
		assert.True(t, want[Decode(c, 3)], Decode(c, 3))
	}
}

func TestAppendInsertions(t *testing.T) {
	code, err := Encode("ACG")
	require.NoError(t, err)

	out := AppendInsertions(nil, code, 3)
	require.Len(t, out, 16)

	for _, c := range out {
		d := editdist.Distance(c, 4, code, 3, -1)
		assert.LessOrEqual(t, d, 1, Decode(c, 4))
	}

	// Deleting the inserted symbol must recover the input.
	for _, c := range out {
		dels := AppendDeletions(nil, c, 4)
		found := false
		for _, back := range dels {
			if back == code {
				found = true
				break
			}
		}
		assert.True(t, found, Decode(c, 4))
	}
}

func TestRandomEdit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("SingleEdit", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			s := Random(rng, 8)
			tcode, tl := RandomEdit(rng, s, 8, 1)
			d := editdist.Distance(s, 8, tcode, tl, -1)
			assert.Equal(t, 1, d)
		}
	})

	t.Run("BoundedByEditCount", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			s := Random(rng, 10)
			n := 1 + rng.Intn(4)
			tcode, tl := RandomEdit(rng, s, 10, n)
			d := editdist.Distance(s, 10, tcode, tl, -1)
			assert.LessOrEqual(t, d, n)
			assert.GreaterOrEqual(t, tl, 1)
			assert.LessOrEqual(t, tl, MaxLen)
		}
	})

	t.Run("LengthOne", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			_, l := RandomEdit(rng, uint64(rng.Intn(4)), 1, 3)
			assert.GreaterOrEqual(t, l, 1)
		}
	})
}
