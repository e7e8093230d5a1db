package model

import (
	"errors"
	"fmt"
)

// DoubleSignError indicates that a masternode cast two semantically different
// votes under the same key — (tip, round, txid) for a tx vote, (tip, round)
// for a round vote — a Byzantine fault.
type DoubleSignError struct {
	Voter     VoterID
	Round     uint16
	Kind      string // "tx" or "round"
	FirstVote interface{}
	NewVote   interface{}
}

func (e DoubleSignError) Error() string {
	return fmt.Sprintf("masternode %s doublesign: %s vote at round %d disagrees with its earlier vote", e.Voter, e.Kind, e.Round)
}

// IsDoubleSignError returns whether err is a DoubleSignError.
func IsDoubleSignError(err error) bool {
	var e DoubleSignError
	return errors.As(err, &e)
}

// MalformedVoteError indicates a round vote whose decision/subject pairing
// violates spec invariant 2 (decision==PASS iff subject==zero; NO never stored).
type MalformedVoteError struct {
	Voter VoterID
	Msg   string
}

func (e MalformedVoteError) Error() string {
	return fmt.Sprintf("malformed vote from %s: %s", e.Voter, e.Msg)
}

// IsMalformedVoteError returns whether err is a MalformedVoteError.
func IsMalformedVoteError(err error) bool {
	var e MalformedVoteError
	return errors.As(err, &e)
}

// BlockRejectedError indicates a vice-block failed structural validation.
type BlockRejectedError struct {
	Block BlockHash
	Msg   string
}

func (e BlockRejectedError) Error() string {
	return fmt.Sprintf("vice-block %s rejected: %s", e.Block, e.Msg)
}

// IsBlockRejectedError returns whether err is a BlockRejectedError.
func IsBlockRejectedError(err error) bool {
	var e BlockRejectedError
	return errors.As(err, &e)
}

// ConfigurationError indicates the voter was constructed with invalid or
// inconsistent consensus parameters (e.g. minQuorum > numOfVoters).
type ConfigurationError struct {
	err error
}

// NewConfigurationErrorf builds a ConfigurationError from a formatted message.
func NewConfigurationErrorf(msg string, args ...interface{}) error {
	return ConfigurationError{err: fmt.Errorf(msg, args...)}
}

func (e ConfigurationError) Error() string { return e.err.Error() }
func (e ConfigurationError) Unwrap() error { return e.err }

// IsConfigurationError returns whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var e ConfigurationError
	return errors.As(err, &e)
}
