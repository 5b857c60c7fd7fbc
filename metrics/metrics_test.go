package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	in := NewIngestion(reg)
	tr := NewTraining(reg)

	in.Declarations.WithLabelValues("MATCH").Add(3)
	in.Specs.Set(10)
	tr.Batches.Inc()
	tr.MaxDelta.Set(0.25)
	tr.Barrier.Observe(0.001)

	require.Equal(t, 3.0, testutil.ToFloat64(in.Declarations.WithLabelValues("MATCH")))
	require.Equal(t, 1.0, testutil.ToFloat64(tr.Batches))
	require.Equal(t, 0.25, testutil.ToFloat64(tr.MaxDelta))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	// registering twice on one registry panics
	require.Panics(t, func() { NewTraining(reg) })
}
