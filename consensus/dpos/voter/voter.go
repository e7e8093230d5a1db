// Package voter implements the per-tip dPoS voting state machine: the pure
// reducer that ingests transactions, vice-blocks, transaction-votes and
// round-votes, and emits votes, fetch requests and submittable blocks.
//
// Every exported method on Voter is a synchronous, allocation-light pure
// function of (state, event) -> (state', Output); none of them perform I/O.
// See Locked for the single-exclusive-lock wrapper required when a Voter is
// shared across goroutines (spec.md §5).
package voter

import (
	"github.com/rs/zerolog"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
	"github.com/crypticcoin/dpos/consensus/dpos/state"
	"github.com/crypticcoin/dpos/consensus/dpos/tally"
	"github.com/crypticcoin/dpos/consensus/dpos/world"
)

// Output is re-exported for callers that only import the voter package.
type Output = model.Output

// Voter is the per-tip voting state machine described in spec.md §2-4.
type Voter struct {
	world world.Callbacks
	log   zerolog.Logger

	amIVoter    bool
	me          model.VoterID
	numOfVoters int
	minQuorum   int

	tip model.BlockHash
	txs map[model.TxID]model.Tx
	v   map[model.BlockHash]*state.Store
}

// New constructs a Voter. numOfVoters and minQuorum must satisfy
// minQuorum <= numOfVoters and minQuorum >= ceil(2*numOfVoters/3), per
// spec.md §3; violating either returns a ConfigurationError.
func New(w world.Callbacks, log zerolog.Logger, numOfVoters, minQuorum int) (*Voter, error) {
	if minQuorum > numOfVoters {
		return nil, model.NewConfigurationErrorf("minQuorum (%d) must not exceed numOfVoters (%d)", minQuorum, numOfVoters)
	}
	if lower := ceilTwoThirds(numOfVoters); minQuorum < lower {
		return nil, model.NewConfigurationErrorf("minQuorum (%d) must be at least ceil(2*numOfVoters/3) = %d", minQuorum, lower)
	}
	return &Voter{
		world:       w,
		log:         log,
		numOfVoters: numOfVoters,
		minQuorum:   minQuorum,
		txs:         make(map[model.TxID]model.Tx),
		v:           make(map[model.BlockHash]*state.Store),
	}, nil
}

func ceilTwoThirds(n int) int {
	return (2*n + 2) / 3
}

// SetVoting configures whether this node is itself a voting masternode, and
// if so under which identity.
func (vr *Voter) SetVoting(amIVoter bool, me model.VoterID) {
	vr.amIVoter = amIVoter
	vr.me = me
}

// Tip returns the current tip.
func (vr *Voter) Tip() model.BlockHash { return vr.tip }

// store returns (creating lazily) the per-tip store for the current tip.
func (vr *Voter) store() *state.Store {
	return vr.storeFor(vr.tip)
}

func (vr *Voter) storeFor(tip model.BlockHash) *state.Store {
	s, ok := vr.v[tip]
	if !ok {
		s = state.NewStore()
		vr.v[tip] = s
	}
	return s
}

// GetCurrentRound returns the smallest round whose tally is not in
// stalemate, per spec.md invariant 5. It is monotonically non-decreasing
// while the tip is fixed, since votes are never removed from the store
// except by UpdateTip.
func (vr *Voter) GetCurrentRound() uint16 {
	s := vr.store()
	for round := uint16(1); ; round++ {
		stats := tally.CalcRoundVotingStats(s, round)
		if !tally.CheckRoundStalemate(stats, vr.numOfVoters, vr.minQuorum) {
			return round
		}
	}
}

// ListCommittedTxs returns the transactions whose current-round pro tally has
// reached minQuorum. The result may be incomplete if some committed txid is
// missing from the local pool, which is acceptable per spec.md §4.3.
func (vr *Voter) ListCommittedTxs() map[model.TxID]model.Tx {
	round := vr.GetCurrentRound()
	s := vr.store()
	res := make(map[model.TxID]model.Tx)
	for txid, tx := range vr.txs {
		stats := tally.CalcTxVotingStats(s, txid, round)
		if stats.Pro >= vr.minQuorum {
			res[txid] = tx
		}
	}
	return res
}

// IsCommittedTx reports whether tx has reached minQuorum round-votes in the
// current round.
func (vr *Voter) IsCommittedTx(txid model.TxID) bool {
	round := vr.GetCurrentRound()
	stats := tally.CalcTxVotingStats(vr.store(), txid, round)
	return stats.Pro >= vr.minQuorum
}

func (vr *Voter) misbehavingErr(err error) Output {
	vr.log.Warn().Err(err).Msg("misbehaving masternode detected")
	return Output{Errors: []error{err}}
}
