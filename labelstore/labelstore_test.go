package labelstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmerlsh/kmer"
)

func TestNew(t *testing.T) {
	t.Run("KOnly", func(t *testing.T) {
		st, err := New(4)
		require.NoError(t, err)
		defer st.Close()

		assert.Equal(t, 4, st.K())
		assert.False(t, st.Extended())
		assert.Len(t, st.Array(4), 256)
		assert.Nil(t, st.Array(3))
		assert.Nil(t, st.Array(5))

		for _, label := range st.Array(4) {
			require.Equal(t, Unassigned, label)
		}
	})

	t.Run("Extended", func(t *testing.T) {
		st, err := New(4, func(o *Options) { o.Extended = true })
		require.NoError(t, err)
		defer st.Close()

		assert.True(t, st.Extended())
		assert.Len(t, st.Array(3), 64)
		assert.Len(t, st.Array(4), 256)
		assert.Len(t, st.Array(5), 1024)
	})

	t.Run("KOutOfRange", func(t *testing.T) {
		var rangeErr *ErrKOutOfRange

		_, err := New(0)
		require.ErrorAs(t, err, &rangeErr)

		_, err = New(32)
		require.ErrorAs(t, err, &rangeErr)

		_, err = New(31, func(o *Options) { o.Extended = true })
		require.ErrorAs(t, err, &rangeErr)
	})
}

func TestTransitions(t *testing.T) {
	st, err := New(4)
	require.NoError(t, err)
	defer st.Close()

	v := kmer.Vertex{Code: 7, Len: 4}

	assert.Equal(t, Unassigned, st.Get(v))
	assert.True(t, st.TryClaim(v))
	assert.Equal(t, Visited, st.Get(v))
	assert.False(t, st.TryClaim(v), "second claim must lose")

	st.Commit(v, 3)
	assert.Equal(t, int32(3), st.Get(v))

	t.Run("CommitTwicePanics", func(t *testing.T) {
		assert.Panics(t, func() { st.Commit(v, 3) })
	})

	t.Run("CommitUnclaimedPanics", func(t *testing.T) {
		assert.Panics(t, func() { st.Commit(kmer.Vertex{Code: 9, Len: 4}, 0) })
	})

	t.Run("CommitNonFinalPanics", func(t *testing.T) {
		w := kmer.Vertex{Code: 11, Len: 4}
		require.True(t, st.TryClaim(w))
		assert.Panics(t, func() { st.Commit(w, Visited) })
	})

	t.Run("GrayIsFinal", func(t *testing.T) {
		w := kmer.Vertex{Code: 12, Len: 4}
		require.True(t, st.TryClaim(w))
		st.Commit(w, Gray)
		assert.Equal(t, Gray, st.Get(w))
	})
}

func TestKOnlyClaimedSet(t *testing.T) {
	st, err := New(4)
	require.NoError(t, err)
	defer st.Close()

	v := kmer.Vertex{Code: 5, Len: 3}

	assert.Equal(t, Unassigned, st.Get(v))
	assert.True(t, st.TryClaim(v))
	assert.Equal(t, Visited, st.Get(v))
	assert.False(t, st.TryClaim(v))

	t.Run("CommitKMinusOnePanics", func(t *testing.T) {
		assert.Panics(t, func() { st.Commit(v, 0) })
	})

	t.Run("KPlusOneOutOfScope", func(t *testing.T) {
		assert.Panics(t, func() { st.Get(kmer.Vertex{Code: 0, Len: 5}) })
		assert.Panics(t, func() { st.TryClaim(kmer.Vertex{Code: 0, Len: 5}) })
	})
}

func TestExtendedLabelsAllLengths(t *testing.T) {
	st, err := New(4, func(o *Options) { o.Extended = true })
	require.NoError(t, err)
	defer st.Close()

	for _, v := range []kmer.Vertex{
		{Code: 1, Len: 3},
		{Code: 2, Len: 4},
		{Code: 3, Len: 5},
	} {
		require.True(t, st.TryClaim(v))
		st.Commit(v, 7)
		assert.Equal(t, int32(7), st.Get(v))
	}
}

func TestSeed(t *testing.T) {
	st, err := New(4)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Seed(10, 0))
	assert.Equal(t, int32(0), st.Get(kmer.Vertex{Code: 10, Len: 4}))

	var dupErr *ErrDuplicateCenter
	err = st.Seed(10, 1)
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, int32(0), dupErr.Index)
}

func TestCloseIdempotent(t *testing.T) {
	st, err := New(4)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, st.Close())
}

func TestMmapBacked(t *testing.T) {
	// Threshold zero forces the mapped allocator even for tiny arrays.
	st, err := New(3, func(o *Options) { o.MmapThreshold = 0 })
	require.NoError(t, err)

	v := kmer.Vertex{Code: 1, Len: 3}
	require.True(t, st.TryClaim(v))
	st.Commit(v, 0)
	assert.Equal(t, int32(0), st.Get(v))

	require.NoError(t, st.Close())
}
