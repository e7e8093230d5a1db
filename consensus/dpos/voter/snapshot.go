package voter

import "github.com/crypticcoin/dpos/consensus/dpos/model"

// Snapshot is a read-only diagnostic view of the voter's state for the
// current tip, read by cmd/dposvoter (through Locked and MetricsWrapper). It
// is never consumed by the decision engine itself — Snapshot exists purely
// for observability, following original_source/dpos.cpp's RPC-facing read
// path (SPEC_FULL.md, "Supplemented features").
type Snapshot struct {
	Tip           model.BlockHash
	CurrentRound  uint16
	NumViceBlocks int
	CommittedTxs  int
}

// Snapshot captures the voter's current tip and round, the number of known
// vice-blocks and the number of committed transactions. It holds no per-round
// tallies.
func (vr *Voter) Snapshot() Snapshot {
	return Snapshot{
		Tip:           vr.tip,
		CurrentRound:  vr.GetCurrentRound(),
		NumViceBlocks: len(vr.store().ViceBlocks),
		CommittedTxs:  len(vr.ListCommittedTxs()),
	}
}

// HasViceBlock reports whether the given vice-block is known under the
// current tip's namespace.
func (vr *Voter) HasViceBlock(hash model.BlockHash) bool {
	_, ok := vr.store().ViceBlocks[hash]
	return ok
}

// HasRoundVoteFrom reports whether voter has cast a round-vote at round under
// the current tip's namespace.
func (vr *Voter) HasRoundVoteFrom(round uint16, voter model.VoterID) bool {
	_, ok := vr.store().RoundVotesAt(round)[voter]
	return ok
}
