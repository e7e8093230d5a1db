package voter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespaceVoter = "dpos_voter"

// Collector is the Prometheus-backed VoterMetrics implementation, registered
// once per process against a prometheus.Registerer, following
// module/metrics/herocache.go's construction style.
type Collector struct {
	currentRound      prometheus.Gauge
	tipAdvances       prometheus.Counter
	committedTxsOnTip prometheus.Gauge
	blocksSubmitted   prometheus.Counter
	votesApplied      *prometheus.CounterVec
	misbehaviors      *prometheus.CounterVec
	applyDuration     *prometheus.HistogramVec
}

// NewCollector constructs and registers a Collector against registrar.
func NewCollector(registrar prometheus.Registerer) *Collector {
	c := &Collector{
		currentRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceVoter,
			Name:      "current_round",
			Help:      "round number the voter currently considers active for its tip",
		}),
		tipAdvances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceVoter,
			Name:      "tip_advances_total",
			Help:      "number of times the voter's tip has moved forward",
		}),
		committedTxsOnTip: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceVoter,
			Name:      "committed_txs_carried_over",
			Help:      "number of instant transactions still committed after the most recent tip advance",
		}),
		blocksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceVoter,
			Name:      "blocks_submitted_total",
			Help:      "number of vice-blocks that reached quorum and were submitted",
		}),
		votesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceVoter,
			Name:      "votes_applied_total",
			Help:      "number of votes applied, by kind",
		}, []string{"kind"}),
		misbehaviors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceVoter,
			Name:      "misbehaviors_detected_total",
			Help:      "number of rejected votes/blocks, by kind",
		}, []string{"kind"}),
		applyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceVoter,
			Name:      "apply_duration_seconds",
			Help:      "time spent inside a single apply* handler call",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}

	registrar.MustRegister(
		c.currentRound,
		c.tipAdvances,
		c.committedTxsOnTip,
		c.blocksSubmitted,
		c.votesApplied,
		c.misbehaviors,
		c.applyDuration,
	)
	return c
}

func (c *Collector) RoundAdvanced(round uint16) {
	c.currentRound.Set(float64(round))
}

func (c *Collector) TipAdvanced(committedTxs int) {
	c.tipAdvances.Inc()
	c.committedTxsOnTip.Set(float64(committedTxs))
}

func (c *Collector) BlockSubmitted() {
	c.blocksSubmitted.Inc()
}

// BlocksSubmittedCounter exposes the underlying counter for test assertions.
func (c *Collector) BlocksSubmittedCounter() prometheus.Counter { return c.blocksSubmitted }

// CurrentRoundGauge exposes the underlying gauge for test assertions.
func (c *Collector) CurrentRoundGauge() prometheus.Gauge { return c.currentRound }

func (c *Collector) VoteApplied(kind string) {
	c.votesApplied.WithLabelValues(kind).Inc()
}

func (c *Collector) MisbehaviorDetected(kind string) {
	c.misbehaviors.WithLabelValues(kind).Inc()
}

func (c *Collector) ApplyDuration(handler string, seconds float64) {
	c.applyDuration.WithLabelValues(handler).Observe(seconds)
}
