// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevelMapping(t *testing.T) {
	require.Equal(t, logrus.ErrorLevel, newLogger(0).Logger.GetLevel())
	require.Equal(t, logrus.InfoLevel, newLogger(1).Logger.GetLevel())
	require.Equal(t, logrus.DebugLevel, newLogger(2).Logger.GetLevel())
	require.Equal(t, logrus.TraceLevel, newLogger(3).Logger.GetLevel())
}

func TestNewLoggerCarriesComponentField(t *testing.T) {
	entry := newLogger(1)
	require.Equal(t, "dd", entry.Data["component"])
}
