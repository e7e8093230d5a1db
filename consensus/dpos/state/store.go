// Package state holds the per-tip voter store: vice-blocks, transaction votes
// and round votes indexed by round and voter, per spec.md §3.
package state

import "github.com/crypticcoin/dpos/consensus/dpos/model"

// Store is the per-tip voter state V[tip].
type Store struct {
	ViceBlocks map[model.BlockHash]model.ViceBlock
	TxVotes    map[uint16]map[model.TxID]map[model.VoterID]model.TxVote
	RoundVotes map[uint16]map[model.VoterID]model.RoundVote
}

// NewStore returns an empty per-tip store.
func NewStore() *Store {
	return &Store{
		ViceBlocks: make(map[model.BlockHash]model.ViceBlock),
		TxVotes:    make(map[uint16]map[model.TxID]map[model.VoterID]model.TxVote),
		RoundVotes: make(map[uint16]map[model.VoterID]model.RoundVote),
	}
}

// RoundVotesAt returns the round-vote map for round, creating it if absent.
// Satisfies tally.RoundVoteSource.
func (s *Store) RoundVotesAt(round uint16) map[model.VoterID]model.RoundVote {
	m, ok := s.RoundVotes[round]
	if !ok {
		m = make(map[model.VoterID]model.RoundVote)
		s.RoundVotes[round] = m
	}
	return m
}

// TxVotesAt returns the tx-vote map for (round, txid), creating it if absent.
func (s *Store) TxVotesAt(round uint16, txid model.TxID) map[model.VoterID]model.TxVote {
	byTx, ok := s.TxVotes[round]
	if !ok {
		byTx = make(map[model.TxID]map[model.VoterID]model.TxVote)
		s.TxVotes[round] = byTx
	}
	byVoter, ok := byTx[txid]
	if !ok {
		byVoter = make(map[model.VoterID]model.TxVote)
		byTx[txid] = byVoter
	}
	return byVoter
}
