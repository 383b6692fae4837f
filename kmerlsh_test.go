package kmerlsh_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmerlsh"
	"github.com/hupe1980/kmerlsh/centers"
	"github.com/hupe1980/kmerlsh/hashfile"
	"github.com/hupe1980/kmerlsh/labelstore"
)

func testCliques(t *testing.T) []centers.Clique {
	t.Helper()
	cliques, err := centers.Read(strings.NewReader("2\nAAAA\nTTTT\n"), 4)
	require.NoError(t, err)
	return cliques
}

func TestNew(t *testing.T) {
	cliques := testCliques(t)

	t.Run("InvalidP", func(t *testing.T) {
		_, err := kmerlsh.New(4, 0, 4, cliques)
		assert.ErrorIs(t, err, kmerlsh.ErrInvalidP)
	})

	t.Run("InvalidQ", func(t *testing.T) {
		_, err := kmerlsh.New(4, 2, 0, cliques)
		assert.ErrorIs(t, err, kmerlsh.ErrInvalidQ)
	})

	t.Run("NoCenters", func(t *testing.T) {
		_, err := kmerlsh.New(4, 2, 4, nil)
		assert.ErrorIs(t, err, kmerlsh.ErrNoCenters)
	})

	t.Run("InvalidStrategy", func(t *testing.T) {
		_, err := kmerlsh.New(4, 2, 4, cliques, kmerlsh.WithStrategy(kmerlsh.Strategy(99)))
		var stratErr *kmerlsh.ErrInvalidStrategy
		require.ErrorAs(t, err, &stratErr)
		assert.Equal(t, kmerlsh.Strategy(99), stratErr.Strategy)
	})

	t.Run("KOutOfRange", func(t *testing.T) {
		pt, err := kmerlsh.New(40, 2, 4, cliques)
		require.NoError(t, err)
		defer pt.Close()

		_, err = pt.Run(context.Background())
		var rangeErr *labelstore.ErrKOutOfRange
		assert.ErrorAs(t, err, &rangeErr)
	})
}

func TestPartitioner(t *testing.T) {
	metrics := &kmerlsh.BasicMetricsCollector{}
	pt, err := kmerlsh.New(4, 2, 4, testCliques(t),
		kmerlsh.WithMetricsCollector(metrics),
	)
	require.NoError(t, err)
	defer pt.Close()

	store, err := pt.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Same(t, store, pt.Store())

	h := store.Array(4)
	assert.Equal(t, int32(0), h[0])    // AAAA
	assert.Equal(t, int32(1), h[0xff]) // TTTT

	dir := t.TempDir()

	t.Run("WriteHash", func(t *testing.T) {
		path := filepath.Join(dir, "labels.hash")
		require.NoError(t, pt.WriteHash(path))

		back, err := hashfile.ReadKMersFile(path, 4)
		require.NoError(t, err)
		assert.Equal(t, h, back)
	})

	t.Run("WriteSnapshot", func(t *testing.T) {
		path := filepath.Join(dir, "labels.snap")
		require.NoError(t, pt.WriteSnapshot(path))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		snap, err := hashfile.LoadSnapshot(f)
		require.NoError(t, err)
		assert.Equal(t, 4, snap.K)
		assert.Equal(t, h, snap.H)
	})

	t.Run("Metrics", func(t *testing.T) {
		stats := metrics.GetStats()
		assert.Equal(t, int64(1), stats.PartitionCount)
		assert.Zero(t, stats.PartitionErrors)
		assert.Equal(t, int64(2), stats.RoundsTotal)
		assert.Positive(t, stats.AssignedTotal)
		assert.Equal(t, int64(1), stats.HashWriteCount)
		assert.Equal(t, int64(1), stats.SnapshotCount)
	})
}

func TestPartitionerCenterList(t *testing.T) {
	pt, err := kmerlsh.New(4, 2, 4, testCliques(t),
		kmerlsh.WithStrategy(kmerlsh.StrategyCenterList),
	)
	require.NoError(t, err)
	defer pt.Close()

	store, err := pt.Run(context.Background())
	require.NoError(t, err)

	h := store.Array(4)
	assert.Equal(t, int32(0), h[0])
	assert.Equal(t, int32(1), h[0xff])
}

func TestPartitionerExtended(t *testing.T) {
	pt, err := kmerlsh.New(4, 2, 4, testCliques(t), kmerlsh.WithExtended(true))
	require.NoError(t, err)
	defer pt.Close()

	store, err := pt.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, store.Extended())
	assert.NotNil(t, store.Array(3))
	assert.NotNil(t, store.Array(5))
}

func TestWriteBeforeRun(t *testing.T) {
	pt, err := kmerlsh.New(4, 2, 4, testCliques(t))
	require.NoError(t, err)
	defer pt.Close()

	assert.ErrorIs(t, pt.WriteHash("unused"), kmerlsh.ErrNotRun)
	assert.ErrorIs(t, pt.WriteSnapshot("unused"), kmerlsh.ErrNotRun)
}

func TestCloseBeforeRun(t *testing.T) {
	pt, err := kmerlsh.New(4, 2, 4, testCliques(t))
	require.NoError(t, err)
	assert.NoError(t, pt.Close())
	assert.NoError(t, pt.Close())
}

func TestStrategy(t *testing.T) {
	assert.Equal(t, "neighbor-probe", kmerlsh.StrategyNeighborProbe.String())
	assert.Equal(t, "center-list", kmerlsh.StrategyCenterList.String())

	s, err := kmerlsh.ParseStrategy("center-list")
	require.NoError(t, err)
	assert.Equal(t, kmerlsh.StrategyCenterList, s)

	s, err = kmerlsh.ParseStrategy("Probe")
	require.NoError(t, err)
	assert.Equal(t, kmerlsh.StrategyNeighborProbe, s)

	_, err = kmerlsh.ParseStrategy("bogus")
	assert.Error(t, err)
}
