package kmerlsh_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hupe1980/kmerlsh"
	"github.com/hupe1980/kmerlsh/centers"
	"github.com/hupe1980/kmerlsh/mis"
)

// Example demonstrates partitioning the 4-mer space around two seed centers.
func Example() {
	cliques, err := centers.Read(strings.NewReader("2\nAAAA\nTTTT\n"), 4)
	if err != nil {
		log.Fatal(err)
	}

	pt, err := kmerlsh.New(4, 2, 4, cliques)
	if err != nil {
		log.Fatal(err)
	}
	defer pt.Close()

	store, err := pt.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	h := store.Array(4)
	fmt.Println("AAAA ->", h[0])
	fmt.Println("TTTT ->", h[len(h)-1])
	// Output:
	// AAAA -> 0
	// TTTT -> 1
}

// Example_centerList demonstrates the precomputed center-list conflict
// strategy, which pays off when centers are sparse.
func Example_centerList() {
	cliques, err := centers.Read(strings.NewReader("2\nACGT\nTGCA\n"), 4)
	if err != nil {
		log.Fatal(err)
	}

	pt, err := kmerlsh.New(4, 2, 4, cliques,
		kmerlsh.WithStrategy(kmerlsh.StrategyCenterList),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer pt.Close()

	if _, err := pt.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

	fmt.Println("partition complete")
	// Output: partition complete
}

// Example_mis demonstrates building a seed center list from scratch as a
// greedy maximal independent set.
func Example_mis() {
	set, err := mis.Build(context.Background(), 3, 2)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("centers:", len(set) > 0)
	// Output: centers: true
}
