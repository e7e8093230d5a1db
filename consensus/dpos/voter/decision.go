package voter

import (
	"sort"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
	"github.com/crypticcoin/dpos/consensus/dpos/tally"
)

// approvedByMeTxs is the set of transactions me has YES-voted in any round of
// the current tip, plus the ids of any such transaction missing from the
// local pool.
type approvedByMeTxs struct {
	txs     map[model.TxID]model.Tx
	missing map[model.TxID]struct{}
}

// listApprovedByMeTxs builds the approved-by-me set, per spec.md §4.3: without
// it the voter cannot detect conflicts and could accidentally doublesign.
func (vr *Voter) listApprovedByMeTxs() approvedByMeTxs {
	res := approvedByMeTxs{txs: make(map[model.TxID]model.Tx), missing: make(map[model.TxID]struct{})}
	s := vr.store()
	for _, byTx := range s.TxVotes {
		for txid, votesByVoter := range byTx {
			vote, ok := votesByVoter[vr.me]
			if !ok {
				continue
			}
			if vote.Choice.Decision != model.DecisionYes {
				continue
			}
			tx, ok := vr.txs[txid]
			if !ok {
				res.missing[txid] = struct{}{}
				continue
			}
			res.txs[txid] = tx
		}
	}
	return res
}

// wasVotedByMeTx reports whether me has already cast a binding (non-PASS) tx
// vote for txid in any round, or any vote at all at nRound.
func (vr *Voter) wasVotedByMeTx(txid model.TxID, nRound uint16) bool {
	s := vr.store()
	if byVoter, ok := s.TxVotes[nRound][txid]; ok {
		if _, ok := byVoter[vr.me]; ok {
			return true
		}
	}
	for _, byTx := range s.TxVotes {
		byVoter, ok := byTx[txid]
		if !ok {
			continue
		}
		vote, ok := byVoter[vr.me]
		if !ok {
			continue
		}
		if vote.Choice.Decision != model.DecisionPass {
			return true
		}
	}
	return false
}

// wasVotedByMeRound reports whether me has already cast a round vote at nRound.
func (vr *Voter) wasVotedByMeRound(nRound uint16) bool {
	_, ok := vr.store().RoundVotesAt(nRound)[vr.me]
	return ok
}

// filterFinishedTxs drops from txs every transaction whose current-round tally
// is already decided (committed or un-committable), per spec.md §4.2.
func (vr *Voter) filterFinishedTxs(txs map[model.TxID]model.Tx, nRound uint16) {
	s := vr.store()
	for txid := range txs {
		stats := tally.CalcTxVotingStats(s, txid, nRound)
		notCommittable := tally.CheckTxNotCommittable(stats, vr.numOfVoters, vr.minQuorum)
		committed := stats.Pro >= vr.minQuorum
		if notCommittable || committed {
			delete(txs, txid)
		}
	}
}

// atLeastOneViceBlockIsValid reports whether some vice-block of nRound
// currently validates against the committed-tx set.
func (vr *Voter) atLeastOneViceBlockIsValid(nRound uint16) bool {
	s := vr.store()
	if len(s.ViceBlocks) == 0 {
		return false
	}
	committed := vr.ListCommittedTxs()
	for _, vb := range s.ViceBlocks {
		if vb.Round == nRound && vr.world.ValidateBlock(vb, committed, true) {
			return true
		}
	}
	return false
}

// txHasAnyVote reports whether any stored tx vote (any round, any voter)
// targets txid.
func (vr *Voter) txHasAnyVote(txid model.TxID) bool {
	for _, byTx := range vr.store().TxVotes {
		if byVoter, ok := byTx[txid]; ok && len(byVoter) > 0 {
			return true
		}
	}
	return false
}

// wasTxLost reports whether txid is unknown locally but referenced by an
// already-received vote — the "lost tx" recovery condition of spec.md §4.4.
func (vr *Voter) wasTxLost(txid model.TxID) bool {
	if _, ok := vr.txs[txid]; ok {
		return false
	}
	return vr.txHasAnyVote(txid)
}

// voteForTx implements spec.md §4.3(a): decide YES/NO/PASS for tx, append the
// vote to Output and apply it locally via applyTxVote so the tally updates
// immediately.
func (vr *Voter) voteForTx(tx model.Tx) Output {
	if !vr.amIVoter {
		return Output{}
	}
	txid := tx.ID
	out := Output{}
	nRound := vr.GetCurrentRound()

	if vr.wasVotedByMeTx(txid, nRound) {
		return out
	}

	decision := model.DecisionYes

	myTxs := vr.listApprovedByMeTxs()
	if len(myTxs.missing) > 0 {
		for txid := range myTxs.missing {
			out.TxRequests = append(out.TxRequests, txid)
		}
		return out
	}

	myTxs.txs[txid] = tx
	if !vr.world.ValidateTxs(myTxs.txs) {
		decision = model.DecisionNo
	} else {
		committed := vr.ListCommittedTxs()
		committed[txid] = tx
		if !vr.world.ValidateTxs(committed) {
			decision = model.DecisionNo
		}
	}

	if decision == model.DecisionYes && vr.wasVotedByMeRound(nRound) {
		decision = model.DecisionPass
	}
	if decision == model.DecisionYes && vr.atLeastOneViceBlockIsValid(nRound) {
		decision = model.DecisionPass
	}

	newVote := model.TxVote{
		Voter:  vr.me,
		Round:  nRound,
		Tip:    vr.tip,
		Choice: model.Choice{Subject: model.Hash(txid), Decision: decision},
	}
	out.TxVotes = append(out.TxVotes, newVote)
	out.Merge(vr.applyTxVote(newVote))
	return out
}

// doTxsVoting runs voteForTx over every locally known transaction, used to
// re-evaluate votes after a lost tx is recovered or a round advances.
func (vr *Voter) doTxsVoting() Output {
	if !vr.amIVoter {
		return Output{}
	}
	out := Output{}
	for _, tx := range vr.txs {
		out.Merge(vr.voteForTx(tx))
	}
	return out
}

// doRoundVoting implements spec.md §4.3(b): choose the best validating
// vice-block of the current round and cast a YES round-vote for it.
func (vr *Voter) doRoundVoting() Output {
	if !vr.amIVoter {
		return Output{}
	}
	out := Output{}
	nRound := vr.GetCurrentRound()
	s := vr.store()
	stats := tally.CalcRoundVotingStats(s, nRound)

	myTxs := vr.listApprovedByMeTxs()
	if len(myTxs.missing) > 0 {
		for txid := range myTxs.missing {
			out.TxRequests = append(out.TxRequests, txid)
		}
		return out
	}

	vr.filterFinishedTxs(myTxs.txs, nRound)
	if len(myTxs.txs) > 0 {
		return out
	}

	if vr.wasVotedByMeRound(nRound) {
		return out
	}

	type candidate struct {
		hash model.BlockHash
		pro  int
	}
	var candidates []candidate
	for hash := range s.ViceBlocks {
		candidates = append(candidates, candidate{hash: hash, pro: stats.Pro[hash]})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].pro != candidates[j].pro {
			return candidates[i].pro > candidates[j].pro
		}
		return model.Hash(candidates[i].hash).Less(model.Hash(candidates[j].hash))
	})

	committed := vr.ListCommittedTxs()
	var chosen *model.BlockHash
	for _, c := range candidates {
		vb := s.ViceBlocks[c.hash]
		if vb.Round == nRound && vr.world.ValidateBlock(vb, committed, true) {
			h := c.hash
			chosen = &h
			break
		}
	}

	if chosen == nil {
		return out
	}

	newVote := model.RoundVote{
		Voter:  vr.me,
		Round:  nRound,
		Tip:    vr.tip,
		Choice: model.Choice{Subject: model.Hash(*chosen), Decision: model.DecisionYes},
	}
	out.RoundVotes = append(out.RoundVotes, newVote)
	out.Merge(vr.applyRoundVote(newVote))
	return out
}

// tryToSubmitBlock implements spec.md §4.3(c): if subject's current-round YES
// tally has reached minQuorum and it still validates, emit a BlockToSubmit.
func (vr *Voter) tryToSubmitBlock(subject model.BlockHash) Output {
	out := Output{}
	nRound := vr.GetCurrentRound()
	s := vr.store()
	stats := tally.CalcRoundVotingStats(s, nRound)

	if stats.Pro[subject] < vr.minQuorum {
		return out
	}
	vb, ok := s.ViceBlocks[subject]
	if !ok || vb.Round != nRound {
		return out
	}
	if !vr.world.ValidateBlock(vb, vr.ListCommittedTxs(), true) {
		return out
	}

	var approvedBy []model.VoterID
	for voterID, vote := range s.RoundVotesAt(nRound) {
		if vote.Choice.Decision == model.DecisionYes && model.BlockHash(vote.Choice.Subject) == subject {
			approvedBy = append(approvedBy, voterID)
		}
	}

	out.BlockToSubmit = &model.BlockToSubmit{Block: vb, ApprovedBy: approvedBy}
	return out
}

// OnRoundTooLong implements spec.md §4.3's forced PASS: when the external
// timer fires and me has not round-voted this round, emit a PASS.
func (vr *Voter) OnRoundTooLong() Output {
	if !vr.amIVoter {
		return Output{}
	}
	nRound := vr.GetCurrentRound()
	out := Output{}
	if vr.wasVotedByMeRound(nRound) {
		return out
	}
	newVote := model.RoundVote{
		Voter:  vr.me,
		Round:  nRound,
		Tip:    vr.tip,
		Choice: model.Choice{Subject: model.Hash{}, Decision: model.DecisionPass},
	}
	out.RoundVotes = append(out.RoundVotes, newVote)
	out.Merge(vr.applyRoundVote(newVote))
	return out
}
