package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmerlsh/hashfile"
	"github.com/hupe1980/kmerlsh/sample"
)

var sampleFlags struct {
	k        int
	hashPath string
	pairs    int
	maxEdits int
	seed     int64
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Estimate collision rates of a finished labeling",
	Long: `Sample draws random k-mer pairs at increasing edit distances from a label
file and reports how often both endpoints share a center label. High collision
rates below the sensitivity radius and low rates beyond the diameter indicate
a healthy locality-sensitive labeling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &sampleFlags

		h, err := hashfile.ReadKMersFile(f.hashPath, f.k)
		if err != nil {
			return err
		}

		results := sample.Run(h, f.k, func(o *sample.Options) {
			if f.pairs > 0 {
				o.Pairs = f.pairs
			}
			if f.maxEdits > 0 {
				o.MaxEdits = f.maxEdits
			}
			o.Seed = f.seed
		})

		fmt.Println("edits  pairs  both_labeled  same_label  collision_rate")
		for _, r := range results {
			fmt.Printf("%5d  %5d  %12d  %10d  %14.4f\n",
				r.Edits, r.Pairs, r.BothLabeled, r.SameLabel, r.CollisionRate())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVarP(&sampleFlags.k, "kmer", "k", 12, "sequence length of the label file")
	sampleCmd.Flags().StringVarP(&sampleFlags.hashPath, "hash", "H", "", "label file to sample (required)")
	sampleCmd.Flags().IntVar(&sampleFlags.pairs, "pairs", 100000, "pairs per edit-distance bucket")
	sampleCmd.Flags().IntVar(&sampleFlags.maxEdits, "max-edits", 0, "largest edit bucket (default k/2+1)")
	sampleCmd.Flags().Int64Var(&sampleFlags.seed, "seed", 1, "random seed")

	_ = sampleCmd.MarkFlagRequired("hash")
}
