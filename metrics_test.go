// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestCollectorsReturnsEveryMetric(t *testing.T) {
	m, err := New(1, 0)
	require.NoError(t, err)
	require.Len(t, m.Collectors(), 5)
}

func TestMustRegisterOnFreshRegistryDoesNotPanic(t *testing.T) {
	m, err := New(1, 0)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { m.MustRegister(reg) })
}

func TestGCBumpsGCCounter(t *testing.T) {
	m, err := New(1, 0)
	require.NoError(t, err)
	m.gc()
	var metric dto.Metric
	require.NoError(t, m.metrics.gcCount.Write(&metric))
	require.Equal(t, float64(1), metric.GetCounter().GetValue())
}
