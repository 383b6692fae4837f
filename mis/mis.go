// Package mis constructs seed center lists: greedy maximal independent sets
// over the graph that joins two k-mers when their edit distance is at most d.
// Every k-mer is then within distance d of some chosen center, and chosen
// centers are pairwise more than d apart.
package mis

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/kmerlsh/editdist"
)

// Options configures a Build run.
type Options struct {
	// Logger receives progress; nil discards it.
	Logger *slog.Logger

	// ProgressEvery throttles progress log records.
	ProgressEvery time.Duration
}

// Build sweeps the 4^k space in integer order and keeps every k-mer not
// covered by an earlier pick. Candidates arrive in near-lexicographic order,
// so the covering center of consecutive candidates is usually close to the
// previously matched one; the search therefore rings outward from the last
// match instead of scanning the whole set front to back.
func Build(ctx context.Context, k, d int, optFns ...func(*Options)) ([]uint64, error) {
	o := Options{
		ProgressEvery: 5 * time.Second,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	limiter := rate.NewLimiter(rate.Every(o.ProgressEvery), 1)

	space := uint64(1) << uint(2*k)
	set := []uint64{0}
	lastFound := 0

	covered := func(s uint64, c uint64) bool {
		return editdist.Distance(s, k, c, k, d+1) <= d
	}

	for i := uint64(1); i < space; i++ {
		if i&0xfff == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if limiter.Allow() {
				o.Logger.Info("independent set sweep",
					"done", i,
					"space", space,
					"centers", len(set),
				)
			}
		}

		found := false

		// Ring outward from the last match while both directions remain.
		reach := min(lastFound, len(set)-lastFound-1)
		for j := 0; j <= reach; j++ {
			if covered(i, set[lastFound+j]) {
				lastFound += j
				found = true
				break
			}
			if covered(i, set[lastFound-j]) {
				lastFound -= j
				found = true
				break
			}
		}

		// One side ran out first; finish the longer side linearly.
		if !found {
			if reach == lastFound {
				for j := lastFound + reach + 1; j < len(set); j++ {
					if covered(i, set[j]) {
						lastFound = j
						found = true
						break
					}
				}
			} else {
				for j := lastFound - reach - 1; j >= 0; j-- {
					if covered(i, set[j]) {
						lastFound = j
						found = true
						break
					}
				}
			}
		}

		if !found {
			set = append(set, i)
			lastFound = len(set) - 1
		}
	}

	o.Logger.Info("independent set complete", "centers", len(set), "k", k, "d", d)
	return set, nil
}
