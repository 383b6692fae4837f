package kmerlsh

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hupe1980/kmerlsh/centers"
	"github.com/hupe1980/kmerlsh/hashfile"
	"github.com/hupe1980/kmerlsh/labelstore"
	"github.com/hupe1980/kmerlsh/partition"
)

// Strategy selects how frontier vertices are tested for conflicts with
// foreign islands.
type Strategy int

const (
	// StrategyNeighborProbe walks single-edit neighbors out to depth p-1 and
	// checks for foreign final labels.
	StrategyNeighborProbe Strategy = iota
	// StrategyCenterList tests the vertex against a precomputed per-island
	// list of centers within distance p+q.
	StrategyCenterList
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyNeighborProbe:
		return "neighbor-probe"
	case StrategyCenterList:
		return "center-list"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy converts a strategy name to its Strategy value.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neighbor-probe", "probe":
		return StrategyNeighborProbe, nil
	case "center-list", "centers":
		return StrategyCenterList, nil
	}
	return 0, fmt.Errorf("unknown conflict strategy %q", name)
}

// Partitioner runs the island-growing BFS for one parameter set and exposes
// the resulting labeling.
type Partitioner struct {
	k, p, q int
	cliques []centers.Clique
	opts    options

	store *labelstore.Store
	stats *partition.Stats
}

// New validates the parameters and prepares a Partitioner. k is the base
// sequence length, p the sensitivity radius, q the island diameter bound.
// The cliques become islands labeled by their position in the slice.
func New(k, p, q int, cliques []centers.Clique, optFns ...Option) (*Partitioner, error) {
	opts := applyOptions(optFns)

	if p < 1 {
		return nil, ErrInvalidP
	}
	if q < 1 {
		return nil, ErrInvalidQ
	}
	if len(cliques) == 0 {
		return nil, ErrNoCenters
	}
	if opts.strategy != StrategyNeighborProbe && opts.strategy != StrategyCenterList {
		return nil, &ErrInvalidStrategy{Strategy: opts.strategy}
	}

	return &Partitioner{
		k:       k,
		p:       p,
		q:       q,
		cliques: cliques,
		opts:    opts,
	}, nil
}

// Run executes the partition and returns the label store. The store stays
// owned by the Partitioner; it is released by Close. Run may only be called
// once.
func (pt *Partitioner) Run(ctx context.Context) (*labelstore.Store, error) {
	logger := pt.opts.logger.WithK(pt.k).WithBounds(pt.p, pt.q).WithCenters(len(pt.cliques))

	start := time.Now()
	store, stats, err := pt.run(ctx)
	duration := time.Since(start)

	var assigned, grayed int64
	rounds := 0
	if stats != nil {
		rounds = stats.Rounds
		assigned = stats.Assigned.Load()
		grayed = stats.Grayed.Load()
		pt.opts.metricsCollector.RecordPartition(rounds, stats.Expanded.Load(), assigned, grayed, duration, err)
	} else {
		pt.opts.metricsCollector.RecordPartition(0, 0, 0, 0, duration, err)
	}
	logger.LogPartition(ctx, rounds, assigned, grayed, duration, err)

	if err != nil {
		return nil, err
	}

	pt.store = store
	pt.stats = stats
	return store, nil
}

func (pt *Partitioner) run(ctx context.Context) (*labelstore.Store, *partition.Stats, error) {
	store, err := labelstore.New(pt.k, func(o *labelstore.Options) {
		o.Extended = pt.opts.extended
		o.MmapThreshold = pt.opts.mmapThreshold
	})
	if err != nil {
		return nil, nil, err
	}

	var checker partition.ConflictChecker
	switch pt.opts.strategy {
	case StrategyCenterList:
		members := make([][]uint64, len(pt.cliques))
		for i, c := range pt.cliques {
			members[i] = c.Members
		}
		checker = partition.NewCenterList(members, pt.k, pt.p, pt.q)
	default:
		checker = partition.NewNeighborProbe(store, pt.p)
	}

	driver, err := partition.NewDriver(store, pt.cliques, checker, partition.Config{
		K:           pt.k,
		P:           pt.p,
		Q:           pt.q,
		Extended:    pt.opts.extended,
		Parallelism: pt.opts.parallelism,
	}, func(o *partition.Options) {
		o.Logger = pt.opts.logger.Logger
		o.ProgressEvery = pt.opts.progressEvery
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	if err := driver.Run(ctx); err != nil {
		store.Close()
		return nil, driver.Stats(), err
	}
	return store, driver.Stats(), nil
}

// Store returns the label store of a completed run, or nil before Run.
func (pt *Partitioner) Store() *labelstore.Store { return pt.store }

// WriteHash writes the labeling as a text label file. A path ending in .zst
// is compressed. Run must have completed.
func (pt *Partitioner) WriteHash(path string) error {
	if pt.store == nil {
		return ErrNotRun
	}

	start := time.Now()
	err := hashfile.WriteFile(path, pt.store)
	pt.opts.metricsCollector.RecordHashWrite(time.Since(start), err)
	pt.opts.logger.LogHashWrite(context.Background(), path, err)
	return err
}

// WriteSnapshot writes the labeling as a compressed binary snapshot suitable
// for fast reloading. Run must have completed.
func (pt *Partitioner) WriteSnapshot(path string) error {
	if pt.store == nil {
		return ErrNotRun
	}

	start := time.Now()
	err := pt.writeSnapshot(path)
	pt.opts.metricsCollector.RecordSnapshot(time.Since(start), err)
	pt.opts.logger.LogSnapshot(context.Background(), path, err)
	return err
}

func (pt *Partitioner) writeSnapshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := hashfile.SaveSnapshot(f, pt.store); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close releases the label store. Safe to call before Run or more than once.
func (pt *Partitioner) Close() error {
	if pt.store == nil {
		return nil
	}
	err := pt.store.Close()
	pt.store = nil
	return err
}
