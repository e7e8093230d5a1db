// Package voter exposes the VoterMetrics interface and its Prometheus
// implementation for the dPoS voting core, modeled on
// module/metrics/herocache.go's collector construction and
// consensus/hotstuff/committee/metrics_wrapper.go's decorator pattern. It is
// kept separate from the wider module/metrics package so the voting core
// does not pull in that package's unrelated dependency surface.
package voter

// VoterMetrics is the observability surface the voting core reports through.
// All methods must be cheap and non-blocking, since they are invoked on the
// hot apply* path, right after each call into the locked voter returns.
type VoterMetrics interface {
	// RoundAdvanced records that the current round moved to round.
	RoundAdvanced(round uint16)

	// TipAdvanced records a tip change and the number of committed
	// transactions carried over the old tip's final tally.
	TipAdvanced(committedTxs int)

	// BlockSubmitted records that a vice-block reached quorum and was handed
	// to the host for submission.
	BlockSubmitted()

	// VoteApplied records a single TxVote or RoundVote having been applied,
	// tagged by kind ("tx" or "round").
	VoteApplied(kind string)

	// MisbehaviorDetected records a rejected vote/block, tagged by the
	// concrete error kind ("doublesign", "malformed", "block_rejected").
	MisbehaviorDetected(kind string)

	// ApplyDuration records the wall-clock time spent inside a single apply*
	// call, tagged by the name of the handler.
	ApplyDuration(handler string, seconds float64)
}
