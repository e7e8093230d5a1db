// Package model defines the wire-independent vote and block types shared by the
// dPoS voting core: choices, transaction votes, round votes, vice-blocks and the
// aggregate Output produced by the voter's event handlers.
package model

import (
	"bytes"
	"encoding/hex"
)

// Hash is a 256-bit opaque identifier with a total order, suitable as a map key.
type Hash [32]byte

// Less establishes the total order over Hash values referenced by spec.md's data
// model ("256-bit opaque byte strings with a total order").
func (h Hash) Less(other Hash) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero hash, the required subject of a PASS choice.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// BlockHash identifies a parent tip or a vice-block.
type BlockHash Hash

func (h BlockHash) String() string { return Hash(h).String() }

// IsZero reports whether h is the zero hash.
func (h BlockHash) IsZero() bool { return Hash(h).IsZero() }

// TxID identifies an instant transaction.
type TxID Hash

func (h TxID) String() string { return Hash(h).String() }

// VoterID identifies a masternode committee member.
type VoterID Hash

func (h VoterID) String() string { return Hash(h).String() }
