package voter_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	votermetrics "github.com/crypticcoin/dpos/module/metrics/voter"
)

func TestCollector_BlockSubmitted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := votermetrics.NewCollector(reg)

	c.BlockSubmitted()
	c.BlockSubmitted()

	require.Equal(t, float64(2), testutil.ToFloat64(c.BlocksSubmittedCounter()))
}

func TestCollector_RoundAdvanced(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := votermetrics.NewCollector(reg)

	c.RoundAdvanced(7)

	require.Equal(t, float64(7), testutil.ToFloat64(c.CurrentRoundGauge()))
}
