package model

import "fmt"

// Decision is a masternode's choice for a subject. The numbering below is the
// p2p_messages numbering; the legacy CTransactionVote numbering (YES=1, NO=2,
// PASS=3) is not implemented anywhere in this module.
type Decision int8

const (
	DecisionYes  Decision = 1
	DecisionPass Decision = 2
	DecisionNo   Decision = 3
)

func (d Decision) String() string {
	switch d {
	case DecisionYes:
		return "YES"
	case DecisionPass:
		return "PASS"
	case DecisionNo:
		return "NO"
	default:
		return fmt.Sprintf("Decision(%d)", int8(d))
	}
}

// Choice pairs a decision with the hash it applies to. A PASS choice must carry
// the zero hash as its subject; any other combination is malformed.
type Choice struct {
	Subject  Hash
	Decision Decision
}

// WellFormedRoundChoice reports whether c is a legal choice for a round vote:
// decision==PASS iff subject==zero, and only YES and PASS are legal round-vote
// decisions (NO never is).
func (c Choice) WellFormedRoundChoice() bool {
	if c.Decision != DecisionYes && c.Decision != DecisionPass {
		return false
	}
	if c.Decision == DecisionPass && !c.Subject.IsZero() {
		return false
	}
	if c.Decision == DecisionYes && c.Subject.IsZero() {
		return false
	}
	return true
}

// TxVote is masternode Voter's choice, at tip Tip and round Round, for the
// transaction identified by Choice.Subject.
type TxVote struct {
	Voter     VoterID
	Tip       BlockHash
	Round     uint16
	Choice    Choice
	Signature []byte
}

// RoundVote is masternode Voter's choice, at tip Tip and round Round, for the
// vice-block identified by Choice.Subject (or the zero hash for PASS).
type RoundVote struct {
	Voter     VoterID
	Tip       BlockHash
	Round     uint16
	Choice    Choice
	Signature []byte
}

// Equal reports whether two TxVotes are semantically identical: same voter,
// round, tip and choice. Two votes from the same voter in the same
// (tip, round, txid) slot that are not Equal are a doublesign.
func (v TxVote) Equal(o TxVote) bool {
	return v.Voter == o.Voter && v.Round == o.Round && v.Tip == o.Tip && v.Choice == o.Choice
}

// Equal reports whether two RoundVotes are semantically identical.
func (v RoundVote) Equal(o RoundVote) bool {
	return v.Voter == o.Voter && v.Round == o.Round && v.Tip == o.Tip && v.Choice == o.Choice
}
