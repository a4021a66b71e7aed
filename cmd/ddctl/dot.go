// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"github.com/spf13/cobra"

	"github.com/silvado/dd"
)

var dotOutput string

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Build the demo workload and export it in DOT format",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := dd.New(boardSize*boardSize, 0)
		if err != nil {
			return err
		}
		queen := nqueens(m, boardSize)
		return m.PrintDot(dotOutput, queen)
	},
}

func init() {
	dotCmd.Flags().StringVarP(&dotOutput, "output", "o", "-", "output file, or \"-\" for stdout")
	rootCmd.AddCommand(dotCmd)
}
