// Package kmerlsh computes a partial, locality-sensitive labeling of the
// k-mer space over the {A, C, G, T} alphabet under Levenshtein distance.
//
// Given seed centers (single k-mers or pre-identified cliques), the labeling
// assigns each reachable k-mer either to the nearest center's island or to an
// unlabeled gray buffer, such that labeled vertices closer than p share a
// label and islands have diameter at most q. The result is the mechanism
// behind an approximate nearest-center hash for similarity search.
//
// # Quick Start
//
//	cliques, _ := centers.ReadFile("centers.txt", 12)
//	pt, _ := kmerlsh.New(12, 2, 6, cliques,
//	    kmerlsh.WithStrategy(kmerlsh.StrategyNeighborProbe),
//	    kmerlsh.WithExtended(true),
//	)
//	defer pt.Close()
//
//	store, _ := pt.Run(context.Background())
//	_ = pt.WriteHash("h12-2-6.hash")
//	_ = store // inspect labels directly if needed
//
// # Conflict Strategies
//
// Two interchangeable strategies decide whether a frontier vertex must go
// gray:
//
//   - StrategyNeighborProbe walks all single-edit neighbors of the vertex out
//     to depth p-1 and checks for foreign final labels. No precomputation,
//     work repeated per vertex.
//   - StrategyCenterList precomputes, per island, the other islands within
//     distance p+q and tests each against the vertex. Cheap per vertex when
//     centers are sparse.
//
// Both enforce the same sensitivity guarantee; the exact set of grayed
// vertices may differ.
//
// # Determinism
//
// Islands expand in input order every round and first discovery wins; rerun
// on identical input produces byte-identical output. The tie-break is
// reproducible but not distance-optimal; reorder the center list to change
// it.
package kmerlsh
