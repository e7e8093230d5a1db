package voter

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
)

// acceptAllWorld is a Callbacks implementation that accepts every transaction
// and every block except those listed in rejectBlocks; AllowArchiving returns
// allowArchiving.
type acceptAllWorld struct {
	allowArchiving bool
	rejectBlocks   map[model.BlockHash]bool
}

func (w *acceptAllWorld) ValidateTxs(map[model.TxID]model.Tx) bool { return true }

func (w *acceptAllWorld) ValidateBlock(vb model.ViceBlock, _ map[model.TxID]model.Tx, _ bool) bool {
	return !w.rejectBlocks[vb.Hash]
}

func (w *acceptAllWorld) AllowArchiving(model.BlockHash) bool { return w.allowArchiving }

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func hashN(n byte) model.Hash {
	var h model.Hash
	h[31] = n
	return h
}

func blockHashN(n byte) model.BlockHash { return model.BlockHash(hashN(n)) }
func txIDN(n byte) model.TxID           { return model.TxID(hashN(n)) }
func voterIDN(n byte) model.VoterID     { return model.VoterID(hashN(n)) }

// newCommitteeVoter builds a 4-masternode committee (minQuorum=3) voter with
// identity me=M1, over tip T.
func newCommitteeVoter(t *testing.T, w *acceptAllWorld) *Voter {
	t.Helper()
	v, err := New(w, testLogger(), 4, 3)
	require.NoError(t, err)
	v.SetVoting(true, voterIDN(1))
	v.UpdateTip(blockHashN(0xAA))
	return v
}

func roundVoteFrom(voter model.VoterID, tip model.BlockHash, round uint16, subject model.BlockHash, decision model.Decision) model.RoundVote {
	return model.RoundVote{
		Voter: voter,
		Tip:   tip,
		Round: round,
		Choice: model.Choice{
			Subject:  model.Hash(subject),
			Decision: decision,
		},
	}
}

// Scenario 1: happy path — a vice-block plus three YES round-votes submits the block.
func TestHappyPath_BlockSubmission(t *testing.T) {
	w := &acceptAllWorld{}
	v := newCommitteeVoter(t, w)
	tip := v.Tip()

	block := model.ViceBlock{Hash: blockHashN(0xB1), HashPrevBlock: tip, Round: 1}
	out := v.ApplyViceBlock(block)
	require.Len(t, out.RoundVotes, 1, "M1 should cast its own YES round-vote for the only candidate")
	assert.Equal(t, model.DecisionYes, out.RoundVotes[0].Choice.Decision)
	assert.Nil(t, out.BlockToSubmit)

	out2 := v.ApplyRoundVote(roundVoteFrom(voterIDN(2), tip, 1, block.Hash, model.DecisionYes))
	assert.Nil(t, out2.BlockToSubmit)

	out3 := v.ApplyRoundVote(roundVoteFrom(voterIDN(3), tip, 1, block.Hash, model.DecisionYes))
	require.NotNil(t, out3.BlockToSubmit)
	assert.Equal(t, block.Hash, out3.BlockToSubmit.Block.Hash)

	approvedBy := map[model.VoterID]bool{}
	for _, id := range out3.BlockToSubmit.ApprovedBy {
		approvedBy[id] = true
	}
	assert.True(t, approvedBy[voterIDN(1)])
	assert.True(t, approvedBy[voterIDN(2)])
	assert.True(t, approvedBy[voterIDN(3)])
}

// Scenario 2: doublesign detection — M2 votes YES for two different blocks at
// the same round.
func TestDoublesignDetection(t *testing.T) {
	w := &acceptAllWorld{}
	v := newCommitteeVoter(t, w)
	tip := v.Tip()

	b1 := blockHashN(0xB1)
	b2 := blockHashN(0xB2)

	out1 := v.ApplyRoundVote(roundVoteFrom(voterIDN(2), tip, 1, b1, model.DecisionYes))
	assert.Empty(t, out1.Errors)

	out2 := v.ApplyRoundVote(roundVoteFrom(voterIDN(2), tip, 1, b2, model.DecisionYes))
	require.Len(t, out2.Errors, 1)
	assert.True(t, model.IsDoubleSignError(out2.Errors[0]))

	stats := v.store().RoundVotesAt(1)
	require.Contains(t, stats, voterIDN(2))
	assert.Equal(t, b1, model.BlockHash(stats[voterIDN(2)].Choice.Subject))
}

// Scenario 3: forced PASS — M1 has already cast its YES, so OnRoundTooLong
// emits nothing; once M2-M4 all PASS, the round advances to 2.
func TestForcedPass_AdvancesRound(t *testing.T) {
	w := &acceptAllWorld{}
	v := newCommitteeVoter(t, w)
	tip := v.Tip()

	block := model.ViceBlock{Hash: blockHashN(0xB1), HashPrevBlock: tip, Round: 1}
	out := v.ApplyViceBlock(block)
	require.Len(t, out.RoundVotes, 1)
	assert.Equal(t, model.DecisionYes, out.RoundVotes[0].Choice.Decision)

	// M1 already voted this round, so OnRoundTooLong should be a no-op now.
	out2 := v.OnRoundTooLong()
	assert.Empty(t, out2.RoundVotes)

	require.Equal(t, uint16(1), v.GetCurrentRound())

	v.ApplyRoundVote(roundVoteFrom(voterIDN(2), tip, 1, model.BlockHash{}, model.DecisionPass))
	v.ApplyRoundVote(roundVoteFrom(voterIDN(3), tip, 1, model.BlockHash{}, model.DecisionPass))
	v.ApplyRoundVote(roundVoteFrom(voterIDN(4), tip, 1, model.BlockHash{}, model.DecisionPass))

	assert.Equal(t, uint16(2), v.GetCurrentRound())
}

// Scenario 4: lost-tx recovery — a YES tx-vote referencing an unknown tx
// requests it; applying the tx then triggers a self tx-vote.
func TestLostTxRecovery(t *testing.T) {
	w := &acceptAllWorld{}
	v := newCommitteeVoter(t, w)
	tip := v.Tip()
	txid := txIDN(0xF1)

	vote := model.TxVote{
		Voter: voterIDN(2),
		Tip:   tip,
		Round: 1,
		Choice: model.Choice{
			Subject:  model.Hash(txid),
			Decision: model.DecisionYes,
		},
	}
	out := v.ApplyTxVote(vote)
	require.Len(t, out.TxRequests, 1)
	assert.Equal(t, txid, out.TxRequests[0])

	tx := model.Tx{ID: txid, Instant: true}
	out2 := v.ApplyTx(tx)
	require.NotEmpty(t, out2.TxVotes, "voteForTx should run once the lost tx is recovered")
	assert.Equal(t, voterIDN(1), out2.TxVotes[0].Voter)
	assert.Equal(t, txid, model.TxID(out2.TxVotes[0].Choice.Subject))
}

// Scenario 5: malformed vote — PASS with a non-zero subject is rejected and
// does not mutate state.
func TestMalformedVote_Rejected(t *testing.T) {
	w := &acceptAllWorld{}
	v := newCommitteeVoter(t, w)
	tip := v.Tip()

	vote := roundVoteFrom(voterIDN(2), tip, 1, blockHashN(0xB1), model.DecisionPass)
	out := v.ApplyRoundVote(vote)
	require.Len(t, out.Errors, 1)
	assert.True(t, model.IsMalformedVoteError(out.Errors[0]))

	_, stored := v.store().RoundVotesAt(1)[voterIDN(2)]
	assert.False(t, stored)
}

// Scenario 6: tip advance pruning — a committed tx under T does not leak into
// the namespace for T'.
func TestTipAdvance_PrunesCommittedTx(t *testing.T) {
	w := &acceptAllWorld{}
	v := newCommitteeVoter(t, w)
	tip := v.Tip()
	txid := txIDN(0xF1)
	v.txs[txid] = model.Tx{ID: txid, Instant: true}

	for _, id := range []byte{1, 2, 3} {
		v.ApplyRoundVote(roundVoteFrom(voterIDN(id), tip, 1, blockHashN(0xB1), model.DecisionYes))
	}
	require.True(t, v.IsCommittedTx(txid))

	newTip := blockHashN(0xCC)
	v.UpdateTip(newTip)

	committed := v.ListCommittedTxs()
	_, stillThere := committed[txid]
	assert.False(t, stillThere)

	assert.Empty(t, v.store().RoundVotesAt(1))
}

func TestConfigurationError_OnInvalidQuorum(t *testing.T) {
	w := &acceptAllWorld{}
	_, err := New(w, testLogger(), 4, 2)
	require.Error(t, err)
	assert.True(t, model.IsConfigurationError(err))

	_, err = New(w, testLogger(), 4, 5)
	require.Error(t, err)
	assert.True(t, model.IsConfigurationError(err))
}

// Idempotence: replaying the same ApplyTxVote twice yields an empty second output.
func TestIdempotence_ApplyTxVoteTwice(t *testing.T) {
	w := &acceptAllWorld{}
	v := newCommitteeVoter(t, w)
	tip := v.Tip()

	vote := model.TxVote{
		Voter: voterIDN(2),
		Tip:   tip,
		Round: 1,
		Choice: model.Choice{
			Subject:  model.Hash(txIDN(0xF1)),
			Decision: model.DecisionYes,
		},
	}

	_ = v.ApplyTxVote(vote)
	out2 := v.ApplyTxVote(vote)
	assert.True(t, out2.Empty())
}

// Idempotence: replaying the same ApplyViceBlock twice yields an empty second output.
func TestIdempotence_ApplyViceBlockTwice(t *testing.T) {
	w := &acceptAllWorld{}
	v := newCommitteeVoter(t, w)
	tip := v.Tip()
	block := model.ViceBlock{Hash: blockHashN(0xB1), HashPrevBlock: tip, Round: 1}

	_ = v.ApplyViceBlock(block)
	out2 := v.ApplyViceBlock(block)
	assert.True(t, out2.Empty())
}
