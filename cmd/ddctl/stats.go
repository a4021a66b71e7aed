// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/silvado/dd"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build the demo workload and print manager statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := dd.New(boardSize*boardSize, 0)
		if err != nil {
			return err
		}
		queen := nqueens(m, boardSize)
		if mesg := m.Error(); mesg != "" {
			return fmt.Errorf("%s", mesg)
		}
		count := m.SatCount(queen)
		logrus.WithField("solutions", count.String()).Info("built n-queens BDD")
		fmt.Print(m.Stats())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
