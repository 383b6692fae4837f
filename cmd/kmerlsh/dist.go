package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmerlsh/editdist"
)

var distFlags struct {
	maxD int
}

var distCmd = &cobra.Command{
	Use:   "dist SEQ1 SEQ2",
	Short: "Compute the Levenshtein distance between two sequences",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := editdist.DistanceStrings(args[0], args[1], distFlags.maxD)
		if distFlags.maxD >= 0 && d >= distFlags.maxD {
			fmt.Printf(">=%d\n", distFlags.maxD)
		} else {
			fmt.Println(d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(distCmd)

	distCmd.Flags().IntVar(&distFlags.maxD, "max", -1, "stop once the distance reaches this bound")
}
