// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var boardSize int

var rootCmd = &cobra.Command{
	Use:   "ddctl",
	Short: "Debugging and benchmarking aid for the dd decision-diagram manager",
	Long: `ddctl builds an N-queens placement BDD on a manager and exposes it
to the stats, dot and bench subcommands. It is a debugging aid, not a wire
protocol: the manager itself has no on-disk format to load or save.`,
}

func Execute() {
	rootCmd.PersistentFlags().IntVarP(&boardSize, "size", "n", 6, "board size for the demo N-queens workload")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
