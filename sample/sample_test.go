package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	k := 4
	cells := 1 << uint(2*k)

	t.Run("UniformLabeling", func(t *testing.T) {
		// Every k-mer carries the same label: every pair collides.
		h := make([]int32, cells)

		results := Run(h, k, func(o *Options) {
			o.Pairs = 2000
		})
		require.Len(t, results, k/2+1)

		for i, r := range results {
			assert.Equal(t, i+1, r.Edits)
			assert.Equal(t, 2000, r.Pairs)
			assert.Equal(t, r.Pairs, r.BothLabeled)
			assert.Equal(t, r.Pairs, r.SameLabel)
			assert.Equal(t, 1.0, r.CollisionRate())
		}
	})

	t.Run("AllGray", func(t *testing.T) {
		h := make([]int32, cells)
		for i := range h {
			h[i] = -1
		}

		results := Run(h, k, func(o *Options) {
			o.Pairs = 500
			o.MaxEdits = 2
		})
		require.Len(t, results, 2)

		for _, r := range results {
			assert.Zero(t, r.BothLabeled)
			assert.Zero(t, r.SameLabel)
			assert.Zero(t, r.CollisionRate())
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		h := make([]int32, cells)
		for i := range h {
			h[i] = int32(i % 7)
		}

		opts := func(o *Options) {
			o.Pairs = 1000
			o.Seed = 99
		}
		assert.Equal(t, Run(h, k, opts), Run(h, k, opts))
	})

	t.Run("RateFallsWithDistance", func(t *testing.T) {
		// Labels in coarse blocks: close pairs usually share a block, distant
		// pairs do not.
		h := make([]int32, cells)
		for i := range h {
			h[i] = int32(i >> 6)
		}

		results := Run(h, k, func(o *Options) {
			o.Pairs = 20000
			o.MaxEdits = 3
		})
		assert.Greater(t, results[0].CollisionRate(), results[2].CollisionRate())
	})
}

func TestCollisionRateEmpty(t *testing.T) {
	assert.Zero(t, Result{}.CollisionRate())
}
