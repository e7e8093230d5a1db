package voter

import (
	"github.com/crypticcoin/dpos/consensus/dpos/model"
	"github.com/crypticcoin/dpos/consensus/dpos/tally"
	"github.com/crypticcoin/dpos/utils/logging"
)

// UpdateTip finalizes the prior tip's in-memory state and begins a fresh
// namespace for newTip. Finished transactions (committed or un-committable,
// judged against the prior tip's final round) are dropped from the global
// pool so memory does not grow unbounded across tips. UpdateTip produces no
// Output.
func (vr *Voter) UpdateTip(newTip model.BlockHash) {
	if !vr.tip.IsZero() {
		vr.filterFinishedTxs(vr.txs, vr.GetCurrentRound())
	}
	vr.tip = newTip
}

// ApplyTx ingests a transaction observed on the network or recovered via a
// fetch request. tx.Instant must hold; the voter does not vote for non-instant
// transactions.
func (vr *Voter) ApplyTx(tx model.Tx) Output {
	if !tx.Instant {
		panic("ApplyTx: tx.Instant must be set")
	}

	if !vr.world.ValidateTxs(map[model.TxID]model.Tx{tx.ID: tx}) {
		vr.log.Debug().Hex("tx_id", logging.ID(model.Hash(tx.ID))).Msg("received invalid tx")
		return Output{}
	}

	wasLost := vr.wasTxLost(tx.ID)
	vr.txs[tx.ID] = tx

	out := Output{}
	if wasLost {
		out.Merge(vr.doTxsVoting())
		out.Merge(vr.doRoundVoting())
	} else {
		out.Merge(vr.voteForTx(tx))
	}
	return out
}

// ApplyViceBlock ingests a candidate next block proposed for the current tip.
func (vr *Voter) ApplyViceBlock(vb model.ViceBlock) Output {
	if !vr.world.ValidateBlock(vb, map[model.TxID]model.Tx{}, false) {
		return vr.misbehavingErr(model.BlockRejectedError{Block: vb.Hash, Msg: "vice-block validation failed"})
	}

	if vb.HashPrevBlock != vr.tip && !vr.world.AllowArchiving(vb.HashPrevBlock) {
		vr.log.Debug().Hex("vice_block", logging.ID(model.Hash(vb.Hash))).Msg("ignoring too old vice-block")
		return Output{}
	}

	// Stored under the current tip's namespace even when accepted only for
	// archiving, matching original_source/dpos_voter.cpp's applyViceBlock
	// (which keys by the voter's live `tip` field, not the vice-block's own).
	s := vr.store()
	if _, exists := s.ViceBlocks[vb.Hash]; exists {
		vr.log.Debug().Hex("vice_block", logging.ID(model.Hash(vb.Hash))).Msg("ignoring duplicate vice-block")
		return Output{}
	}
	s.ViceBlocks[vb.Hash] = vb

	if vb.HashPrevBlock != vr.tip {
		return Output{}
	}

	if vb.Round != vr.GetCurrentRound() {
		vr.log.Debug().Hex("vice_block", logging.ID(model.Hash(vb.Hash))).Msg("ignoring vice-block from a previous round")
		return Output{}
	}

	return vr.doRoundVoting()
}

// ApplyTxVote ingests a transaction vote from the network or archive.
func (vr *Voter) ApplyTxVote(vote model.TxVote) Output {
	if vote.Tip != vr.tip && !vr.world.AllowArchiving(vote.Tip) {
		vr.log.Debug().Hex("tip", logging.ID(model.Hash(vote.Tip))).Msg("ignoring too-old transaction vote")
		return Output{}
	}

	txid := model.TxID(vote.Choice.Subject)
	s := vr.store()
	byVoter := s.TxVotesAt(vote.Round, txid)

	if existing, ok := byVoter[vote.Voter]; ok {
		if !existing.Equal(vote) {
			return vr.misbehavingErr(model.DoubleSignError{Voter: vote.Voter, Round: vote.Round, Kind: "tx", FirstVote: existing, NewVote: vote})
		}
		return Output{}
	}
	byVoter[vote.Voter] = vote

	if vote.Tip != vr.tip {
		return Output{}
	}

	out := Output{}
	if _, ok := vr.txs[txid]; !ok {
		out.TxRequests = append(out.TxRequests, txid)
	}
	out.Merge(vr.doRoundVoting())
	return out
}

// applyTxVote is the internal entry point used by voteForTx to apply the
// locally-produced vote immediately, sharing the exact semantics of the
// public handler above.
func (vr *Voter) applyTxVote(vote model.TxVote) Output {
	return vr.ApplyTxVote(vote)
}

// ApplyRoundVote ingests a round vote from the network or archive.
func (vr *Voter) ApplyRoundVote(vote model.RoundVote) Output {
	if vote.Tip != vr.tip && !vr.world.AllowArchiving(vote.Tip) {
		vr.log.Debug().Hex("tip", logging.ID(model.Hash(vote.Tip))).Msg("ignoring too-old round vote")
		return Output{}
	}

	s := vr.store()
	roundVoting := s.RoundVotesAt(vote.Round)

	if existing, ok := roundVoting[vote.Voter]; ok {
		if !existing.Equal(vote) {
			return vr.misbehavingErr(model.DoubleSignError{Voter: vote.Voter, Round: vote.Round, Kind: "round", FirstVote: existing, NewVote: vote})
		}
		return Output{}
	}

	if !vote.Choice.WellFormedRoundChoice() {
		msg := "PASS choice must carry the zero subject"
		switch vote.Choice.Decision {
		case model.DecisionNo:
			msg = "NO is never a legal round-vote decision"
		case model.DecisionYes:
			msg = "YES choice must carry a non-zero subject"
		case model.DecisionPass:
		default:
			msg = "unknown round-vote decision"
		}
		return vr.misbehavingErr(model.MalformedVoteError{Voter: vote.Voter, Msg: msg})
	}

	roundVoting[vote.Voter] = vote

	out := Output{}
	if vote.Tip != vr.tip {
		return out
	}

	stats := tally.CalcRoundVotingStats(s, vote.Round)
	if tally.CheckRoundStalemate(stats, vr.numOfVoters, vr.minQuorum) {
		out.Merge(vr.doTxsVoting())
		out.Merge(vr.doRoundVoting())
	}
	out.Merge(vr.doRoundVoting())
	if vote.Choice.Decision == model.DecisionYes {
		out.Merge(vr.tryToSubmitBlock(model.BlockHash(vote.Choice.Subject)))
	}
	return out
}

// applyRoundVote is the internal entry point used by doRoundVoting/
// OnRoundTooLong to apply a locally-produced vote immediately.
func (vr *Voter) applyRoundVote(vote model.RoundVote) Output {
	return vr.ApplyRoundVote(vote)
}
