// Package p2p defines the wire-format counterparts of the vote/block model
// (spec.md §6) and their CBOR envelope codec, the Go analogue of
// original_source/dpos_p2p_messages.h.
package p2p

import "github.com/crypticcoin/dpos/consensus/dpos/model"

// VoteChoiceWire is the wire form of model.Choice: subject hash plus an
// int8-coded decision, field order normative per spec.md §6.
type VoteChoiceWire struct {
	Subject  model.Hash `cbor:"1,keyasint"`
	Decision int8       `cbor:"2,keyasint"`
}

// TxVoteMessage is the wire form of a transaction vote (CTxVote_p2p): a
// masternode may bundle several choices for the same (tip, round) under one
// signature.
type TxVoteMessage struct {
	Tip       model.Hash       `cbor:"1,keyasint"`
	Round     uint16           `cbor:"2,keyasint"`
	Choices   []VoteChoiceWire `cbor:"3,keyasint"`
	Signature []byte           `cbor:"4,keyasint"`
}

// RoundVoteMessage is the wire form of a round vote (CRoundVote_p2p).
type RoundVoteMessage struct {
	Tip       model.Hash     `cbor:"1,keyasint"`
	Round     uint16         `cbor:"2,keyasint"`
	Choice    VoteChoiceWire `cbor:"3,keyasint"`
	Signature []byte         `cbor:"4,keyasint"`
}

// ViceBlockMessage is the wire form of a vice-block announcement.
type ViceBlockMessage struct {
	Hash          model.Hash `cbor:"1,keyasint"`
	HashPrevBlock model.Hash `cbor:"2,keyasint"`
	Round         uint16     `cbor:"3,keyasint"`
	Vtx           [][]byte   `cbor:"4,keyasint"`
}

// ToChoice converts a wire choice to the core's model.Choice.
func (w VoteChoiceWire) ToChoice() model.Choice {
	return model.Choice{Subject: w.Subject, Decision: model.Decision(w.Decision)}
}

// FromChoice converts a core model.Choice to its wire form.
func FromChoice(c model.Choice) VoteChoiceWire {
	return VoteChoiceWire{Subject: c.Subject, Decision: int8(c.Decision)}
}

// ToRoundVote converts msg into a model.RoundVote cast by voter, matching the
// single-choice shape of CRoundVote_p2p.
func (msg RoundVoteMessage) ToRoundVote(voter model.VoterID) model.RoundVote {
	return model.RoundVote{
		Voter:     voter,
		Tip:       model.BlockHash(msg.Tip),
		Round:     msg.Round,
		Choice:    msg.Choice.ToChoice(),
		Signature: msg.Signature,
	}
}

// FromRoundVote builds the wire message for a RoundVote. The signature travels
// in the payload; the voter identity does not, since it is carried outside the
// payload by the transport layer that stamps the authenticated sender.
func FromRoundVote(v model.RoundVote) RoundVoteMessage {
	return RoundVoteMessage{
		Tip:       model.Hash(v.Tip),
		Round:     v.Round,
		Choice:    FromChoice(v.Choice),
		Signature: v.Signature,
	}
}

// ToTxVotes expands a (possibly multi-choice) TxVoteMessage into one
// model.TxVote per choice, all sharing tip/round/signature/voter.
func (msg TxVoteMessage) ToTxVotes(voter model.VoterID) []model.TxVote {
	votes := make([]model.TxVote, 0, len(msg.Choices))
	for _, c := range msg.Choices {
		votes = append(votes, model.TxVote{
			Voter:     voter,
			Tip:       model.BlockHash(msg.Tip),
			Round:     msg.Round,
			Choice:    c.ToChoice(),
			Signature: msg.Signature,
		})
	}
	return votes
}

// FromTxVotes packs TxVotes sharing the same (tip, round, signature) into one
// TxVoteMessage, mirroring CTxVote_p2p's multi-choice shape.
func FromTxVotes(votes []model.TxVote) TxVoteMessage {
	if len(votes) == 0 {
		return TxVoteMessage{}
	}
	msg := TxVoteMessage{
		Tip:       model.Hash(votes[0].Tip),
		Round:     votes[0].Round,
		Signature: votes[0].Signature,
	}
	for _, v := range votes {
		msg.Choices = append(msg.Choices, FromChoice(v.Choice))
	}
	return msg
}
