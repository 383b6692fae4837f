package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmerlsh"
	"github.com/hupe1980/kmerlsh/centers"
)

var partitionFlags struct {
	k           int
	p           int
	q           int
	centersPath string
	output      string
	snapshot    string
	extended    bool
	strategy    string
	parallelism int
}

var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Grow islands around seed centers and write the label file",
	Long: `Partition reads a center (or clique) file, grows an island around every
center for q/2 rounds, quarantines contested vertices in the gray buffer, and
writes the labeling as a text hash file. An output path ending in .zst is
compressed; --snapshot additionally writes a binary snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &partitionFlags

		cliques, err := centers.ReadFile(f.centersPath, f.k)
		if err != nil {
			return err
		}

		strategy, err := kmerlsh.ParseStrategy(f.strategy)
		if err != nil {
			return err
		}

		pt, err := kmerlsh.New(f.k, f.p, f.q, cliques,
			kmerlsh.WithLogger(newLogger()),
			kmerlsh.WithStrategy(strategy),
			kmerlsh.WithExtended(f.extended),
			kmerlsh.WithParallelism(f.parallelism),
		)
		if err != nil {
			return err
		}
		defer pt.Close()

		if _, err := pt.Run(cmd.Context()); err != nil {
			return err
		}

		output := f.output
		if output == "" {
			output = defaultHashName(f.k, f.p, f.q, f.centersPath)
		}
		if err := pt.WriteHash(output); err != nil {
			return err
		}

		if f.snapshot != "" {
			if err := pt.WriteSnapshot(f.snapshot); err != nil {
				return err
			}
		}
		return nil
	},
}

// defaultHashName derives the output name from the parameters and the center
// file stem, e.g. h12-2-6-centers.hash.
func defaultHashName(k, p, q int, centersPath string) string {
	stem := filepath.Base(centersPath)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	return fmt.Sprintf("h%d-%d-%d-%s.hash", k, p, q, stem)
}

func init() {
	rootCmd.AddCommand(partitionCmd)

	partitionCmd.Flags().IntVarP(&partitionFlags.k, "kmer", "k", 12, "base sequence length")
	partitionCmd.Flags().IntVarP(&partitionFlags.p, "sensitivity", "p", 2, "sensitivity radius")
	partitionCmd.Flags().IntVarP(&partitionFlags.q, "diameter", "q", 6, "island diameter bound")
	partitionCmd.Flags().StringVarP(&partitionFlags.centersPath, "centers", "c", "", "center or clique file (required)")
	partitionCmd.Flags().StringVarP(&partitionFlags.output, "output", "o", "", "label file path (default h{k}-{p}-{q}-{centers}.hash)")
	partitionCmd.Flags().StringVar(&partitionFlags.snapshot, "snapshot", "", "also write a binary snapshot to this path")
	partitionCmd.Flags().BoolVar(&partitionFlags.extended, "extended", false, "also label the (k-1)- and (k+1)-mer populations")
	partitionCmd.Flags().StringVar(&partitionFlags.strategy, "strategy", "neighbor-probe", "conflict strategy: neighbor-probe or center-list")
	partitionCmd.Flags().IntVar(&partitionFlags.parallelism, "parallelism", runtime.NumCPU(), "workers per conflict-resolution layer")

	_ = partitionCmd.MarkFlagRequired("centers")
}
