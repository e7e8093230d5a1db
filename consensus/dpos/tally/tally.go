// Package tally implements pure quorum-arithmetic functions over the voter's
// per-tip vote store. Every function here is a pure function of its inputs,
// per spec.md §4.2.
package tally

import "github.com/crypticcoin/dpos/consensus/dpos/model"

// TxVotingDistribution is the per-round tally for a single transaction.
// Pro/Contra count round-vote YES/NO entries (any subject) in the round;
// Abstinendi counts round-vote PASS entries specifically for this txid. The
// source intertwines tx-level commitment with round-vote presence: a
// transaction is committed once >= minQuorum round-votes exist in a round,
// which encodes that the committee progressed past voting on it.
type TxVotingDistribution struct {
	Pro        int
	Contra     int
	Abstinendi int
}

// Totus is the total number of round-votes counted for this tx's round.
func (d TxVotingDistribution) Totus() int { return d.Pro + d.Contra + d.Abstinendi }

// RoundVotingDistribution is the per-round tally over vice-block subjects.
type RoundVotingDistribution struct {
	Pro        map[model.BlockHash]int
	Abstinendi int
}

// Totus is the sum of all subject tallies plus abstentions.
func (d RoundVotingDistribution) Totus() int {
	total := d.Abstinendi
	for _, n := range d.Pro {
		total += n
	}
	return total
}

// Best returns the highest vote count among the tracked subjects, or 0 if none.
func (d RoundVotingDistribution) Best() int {
	best := 0
	for _, n := range d.Pro {
		if n > best {
			best = n
		}
	}
	return best
}

// RoundVoteSource is the minimal read surface tally needs over a voter's
// per-tip round-vote store for the given round.
type RoundVoteSource interface {
	RoundVotesAt(round uint16) map[model.VoterID]model.RoundVote
}

// CalcRoundVotingStats computes the RoundVotingDistribution for round from
// store, per spec.md §4.2.
func CalcRoundVotingStats(store RoundVoteSource, round uint16) RoundVotingDistribution {
	stats := RoundVotingDistribution{Pro: make(map[model.BlockHash]int)}
	for _, vote := range store.RoundVotesAt(round) {
		switch vote.Choice.Decision {
		case model.DecisionYes:
			stats.Pro[model.BlockHash(vote.Choice.Subject)]++
		case model.DecisionPass:
			stats.Abstinendi++
		}
	}
	return stats
}

// CalcTxVotingStats computes the TxVotingDistribution for txid at round from
// the round-vote store, per spec.md §4.2: pro/contra count round-vote YES/NO
// entries of any subject in the round; abstinendi counts round-vote PASS
// entries whose subject equals txid.
func CalcTxVotingStats(store RoundVoteSource, txid model.TxID, round uint16) TxVotingDistribution {
	stats := TxVotingDistribution{}
	for _, vote := range store.RoundVotesAt(round) {
		switch vote.Choice.Decision {
		case model.DecisionYes:
			stats.Pro++
		case model.DecisionNo:
			stats.Contra++
		case model.DecisionPass:
			if model.TxID(vote.Choice.Subject) == txid {
				stats.Abstinendi++
			}
		}
	}
	return stats
}

// CheckRoundStalemate reports whether no subject can possibly still reach
// minQuorum in this round, even if every unseen voter votes for the current
// leader. When true, the round must advance.
func CheckRoundStalemate(stats RoundVotingDistribution, numOfVoters, minQuorum int) bool {
	totus := stats.Totus()
	notKnown := 0
	if totus <= numOfVoters {
		notKnown = numOfVoters - totus
	}
	return stats.Best()+notKnown < minQuorum
}

// CheckTxNotCommittable reports whether txStats can no longer possibly reach
// minQuorum, even with every unseen voter voting pro.
func CheckTxNotCommittable(txStats TxVotingDistribution, numOfVoters, minQuorum int) bool {
	totus := txStats.Totus()
	notKnown := 0
	if totus <= numOfVoters {
		notKnown = numOfVoters - totus
	}
	return txStats.Pro+notKnown < minQuorum
}
