package partition

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/kmerlsh/centers"
	"github.com/hupe1980/kmerlsh/kmer"
	"github.com/hupe1980/kmerlsh/labelstore"
)

// Config carries the partition parameters.
type Config struct {
	// K is the base sequence length.
	K int
	// P is the sensitivity radius: two finally labeled vertices closer than P
	// must share a label, which the gray buffer enforces.
	P int
	// Q bounds the island diameter; the BFS runs for exactly Q/2 rounds.
	Q int
	// Extended also labels the (k-1)- and (k+1)-mer populations.
	Extended bool
	// Parallelism bounds the workers resolving conflicts within one island's
	// layer. Values <= 1 keep resolution sequential. Parallelism never crosses
	// island boundaries: commits inside one layer are either the owner's index
	// or Gray, neither of which a sibling probe of the same island can observe
	// as a conflict, so the outcome is identical to the sequential order.
	Parallelism int
}

// minParallelLayer is the layer size below which goroutine fan-out costs more
// than it saves.
const minParallelLayer = 1024

// Options configures a Driver beyond the partition parameters.
type Options struct {
	// Logger receives round progress; nil discards it.
	Logger *slog.Logger

	// ProgressEvery throttles round-progress log records.
	ProgressEvery time.Duration
}

// Stats aggregates counters across a run. Counters are atomic because layer
// resolution may be parallel.
type Stats struct {
	Rounds   int
	Expanded atomic.Int64
	Assigned atomic.Int64
	Grayed   atomic.Int64
}

// Driver orchestrates the round loop: for r = 1..Q/2, every island advances
// its frontier by one edit step and resolves the new layer before the next
// island moves. The strict island order within a round is a correctness
// requirement, not a simplification: later islands must observe earlier
// islands' final labels for the first-discovery tie-break to be well defined.
type Driver struct {
	cfg     Config
	store   *labelstore.Store
	islands []*Island
	checker ConflictChecker
	logger  *slog.Logger
	limiter *rate.Limiter
	stats   Stats

	buf []uint64 // neighbor scratch for the single-threaded expansion
}

// NewDriver seeds the store with the cliques (one island per clique, labeled
// by position) and prepares the round loop. The checker decides gray
// placement; see NewNeighborProbe and NewCenterList.
func NewDriver(store *labelstore.Store, cliques []centers.Clique, checker ConflictChecker, cfg Config, optFns ...func(*Options)) (*Driver, error) {
	o := Options{
		ProgressEvery: 5 * time.Second,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	d := &Driver{
		cfg:     cfg,
		store:   store,
		islands: make([]*Island, len(cliques)),
		checker: checker,
		logger:  o.Logger,
		limiter: rate.NewLimiter(rate.Every(o.ProgressEvery), 1),
	}

	for i, c := range cliques {
		for _, code := range c.Members {
			if err := store.Seed(code, int32(i)); err != nil {
				return nil, fmt.Errorf("seed island %d: %w", i, err)
			}
		}
		d.islands[i] = newIsland(int32(i), c.Members, cfg.K)
	}

	return d, nil
}

// Stats returns the run counters.
func (d *Driver) Stats() *Stats { return &d.stats }

// Run executes the fixed number of rounds. Termination is by round count, not
// convergence: vertices unreached after Q/2 rounds stay Unassigned, which is
// distinct from Gray. The context is only checked between rounds; the
// computation is bounded and offline.
func (d *Driver) Run(ctx context.Context) error {
	rounds := d.cfg.Q / 2
	d.stats.Rounds = rounds

	for r := 1; r <= rounds; r++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		live := 0
		for _, isl := range d.islands {
			if isl.state == Exhausted {
				continue
			}
			d.advance(isl)
			if isl.state == Exhausted {
				continue
			}
			live++
			d.stats.Expanded.Add(int64(len(isl.layer)))
			d.resolve(isl, r)
		}

		if d.limiter.Allow() {
			d.logger.Info("round complete",
				"round", r,
				"rounds", rounds,
				"live_islands", live,
				"expanded", d.stats.Expanded.Load(),
				"assigned", d.stats.Assigned.Load(),
				"grayed", d.stats.Grayed.Load(),
			)
		}
		if live == 0 {
			d.logger.Info("all islands exhausted", "round", r)
			break
		}
	}

	return nil
}

// resolve commits a final label for every vertex of the island's fresh layer
// before the next island expands.
func (d *Driver) resolve(isl *Island, radius int) {
	layer := isl.layer
	if d.cfg.Parallelism > 1 && len(layer) >= minParallelLayer {
		g := new(errgroup.Group)
		g.SetLimit(d.cfg.Parallelism)
		chunk := (len(layer) + d.cfg.Parallelism - 1) / d.cfg.Parallelism
		for start := 0; start < len(layer); start += chunk {
			end := min(start+chunk, len(layer))
			part := layer[start:end]
			g.Go(func() error {
				d.resolveSlice(part, isl.index, radius)
				return nil
			})
		}
		_ = g.Wait() // workers never fail
		return
	}
	d.resolveSlice(layer, isl.index, radius)
}

func (d *Driver) resolveSlice(layer []kmer.Vertex, owner int32, radius int) {
	for _, v := range layer {
		// The k-only variant claims (k-1)-mers for deduplication but never
		// labels them.
		if !d.cfg.Extended && v.Len != d.cfg.K {
			continue
		}
		if d.store.Get(v) != labelstore.Visited {
			continue
		}
		if d.checker.IsConflicting(v, owner, radius) {
			d.store.Commit(v, labelstore.Gray)
			d.stats.Grayed.Add(1)
		} else {
			d.store.Commit(v, owner)
			d.stats.Assigned.Add(1)
		}
	}
}
