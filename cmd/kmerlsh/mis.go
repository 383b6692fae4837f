package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmerlsh/centers"
	"github.com/hupe1980/kmerlsh/mis"
)

var misFlags struct {
	k      int
	d      int
	output string
}

var misCmd = &cobra.Command{
	Use:   "mis",
	Short: "Build a seed center list as a greedy maximal independent set",
	Long: `Mis sweeps all 4^k k-mers in integer order and keeps every k-mer farther
than d from all previously kept ones. The output is a center file that the
partition command accepts directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &misFlags

		set, err := mis.Build(cmd.Context(), f.k, f.d, func(o *mis.Options) {
			o.Logger = newLogger().Logger
		})
		if err != nil {
			return err
		}

		cliques := make([]centers.Clique, len(set))
		for i, code := range set {
			cliques[i].Members = []uint64{code}
		}

		out := os.Stdout
		if f.output != "" {
			file, err := os.Create(f.output)
			if err != nil {
				return err
			}
			defer file.Close()
			out = file
		}
		return centers.Write(out, cliques, f.k)
	},
}

func init() {
	rootCmd.AddCommand(misCmd)

	misCmd.Flags().IntVarP(&misFlags.k, "kmer", "k", 8, "sequence length")
	misCmd.Flags().IntVarP(&misFlags.d, "distance", "d", 2, "minimum pairwise distance exceeds this")
	misCmd.Flags().StringVarP(&misFlags.output, "output", "o", "", "center file path (default stdout)")
}
