// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/silvado/dd"
)

var benchSift bool

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Build the demo workload and report construction/reordering timing",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := dd.New(boardSize*boardSize, 0)
		if err != nil {
			return err
		}
		start := time.Now()
		queen := m.AddRef(nqueens(m, boardSize))
		buildElapsed := time.Since(start)
		if mesg := m.Error(); mesg != "" {
			return fmt.Errorf("%s", mesg)
		}
		logrus.WithFields(logrus.Fields{
			"board":    boardSize,
			"elapsed":  buildElapsed,
			"solutions": m.SatCount(queen).String(),
		}).Info("built n-queens BDD")

		if benchSift {
			start = time.Now()
			if err := m.Sift(); err != nil {
				return err
			}
			logrus.WithField("elapsed", time.Since(start)).Info("sifting pass complete")
		}

		fmt.Print(m.Stats())
		return nil
	},
}

func init() {
	benchCmd.Flags().BoolVar(&benchSift, "sift", false, "run one sifting pass after construction")
	rootCmd.AddCommand(benchCmd)
}
