package voter

import (
	"time"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
	votermetrics "github.com/crypticcoin/dpos/module/metrics/voter"
)

// MetricsWrapper wraps a Locked voter, reporting apply* durations, vote and
// misbehavior counts, and round/tip transitions to a votermetrics.VoterMetrics
// collector. Modeled on
// consensus/hotstuff/committee/metrics_wrapper.go's decorator pattern.
type MetricsWrapper struct {
	inner   *Locked
	metrics votermetrics.VoterMetrics
}

// NewMetricsWrapper constructs a MetricsWrapper around inner.
func NewMetricsWrapper(inner *Locked, metrics votermetrics.VoterMetrics) *MetricsWrapper {
	return &MetricsWrapper{inner: inner, metrics: metrics}
}

func (w *MetricsWrapper) report(out Output, kind string) {
	for _, v := range out.RoundVotes {
		_ = v
		w.metrics.VoteApplied("round")
	}
	for _, v := range out.TxVotes {
		_ = v
		w.metrics.VoteApplied("tx")
	}
	for _, err := range out.Errors {
		w.metrics.MisbehaviorDetected(misbehaviorKind(err))
	}
	if out.BlockToSubmit != nil {
		w.metrics.BlockSubmitted()
	}
	w.metrics.RoundAdvanced(w.inner.GetCurrentRound())
	_ = kind
}

func misbehaviorKind(err error) string {
	switch {
	case model.IsDoubleSignError(err):
		return "doublesign"
	case model.IsMalformedVoteError(err):
		return "malformed"
	case model.IsBlockRejectedError(err):
		return "block_rejected"
	default:
		return "unknown"
	}
}

func (w *MetricsWrapper) UpdateTip(newTip model.BlockHash) {
	start := time.Now()
	w.inner.UpdateTip(newTip)
	w.metrics.ApplyDuration("UpdateTip", time.Since(start).Seconds())
	w.metrics.TipAdvanced(len(w.inner.ListCommittedTxs()))
}

func (w *MetricsWrapper) ApplyTx(tx model.Tx) Output {
	start := time.Now()
	out := w.inner.ApplyTx(tx)
	w.metrics.ApplyDuration("ApplyTx", time.Since(start).Seconds())
	w.report(out, "tx")
	return out
}

func (w *MetricsWrapper) ApplyViceBlock(vb model.ViceBlock) Output {
	start := time.Now()
	out := w.inner.ApplyViceBlock(vb)
	w.metrics.ApplyDuration("ApplyViceBlock", time.Since(start).Seconds())
	w.report(out, "vice_block")
	return out
}

func (w *MetricsWrapper) ApplyTxVote(vote model.TxVote) Output {
	start := time.Now()
	out := w.inner.ApplyTxVote(vote)
	w.metrics.ApplyDuration("ApplyTxVote", time.Since(start).Seconds())
	w.report(out, "tx_vote")
	return out
}

func (w *MetricsWrapper) ApplyRoundVote(vote model.RoundVote) Output {
	start := time.Now()
	out := w.inner.ApplyRoundVote(vote)
	w.metrics.ApplyDuration("ApplyRoundVote", time.Since(start).Seconds())
	w.report(out, "round_vote")
	return out
}

func (w *MetricsWrapper) OnRoundTooLong() Output {
	start := time.Now()
	out := w.inner.OnRoundTooLong()
	w.metrics.ApplyDuration("OnRoundTooLong", time.Since(start).Seconds())
	w.report(out, "round_too_long")
	return out
}

func (w *MetricsWrapper) Snapshot() Snapshot {
	return w.inner.Snapshot()
}
