// Package world declares the synchronous, side-effect-free collaborator
// surface the voter is constructed with: transaction/block validation and the
// archiving-tolerance check, per spec.md §6.
package world

import "github.com/crypticcoin/dpos/consensus/dpos/model"

// Callbacks is injected into the voter by the host. Every method must be
// synchronous and must not mutate voter state — the voter is a pure reducer
// and all I/O is the host's responsibility (spec.md §5).
type Callbacks interface {
	// ValidateTxs checks collection consistency against the host's mempool
	// rules for the given set of transactions, keyed by TxID.
	ValidateTxs(txs map[model.TxID]model.Tx) bool

	// ValidateBlock checks vb's structural validity and, when checkTxs is
	// true, that vb's transactions are consistent with committedTxs.
	ValidateBlock(vb model.ViceBlock, committedTxs map[model.TxID]model.Tx, checkTxs bool) bool

	// AllowArchiving reports whether votes/blocks for oldTip should still be
	// accepted even though the voter's current tip has since moved on.
	AllowArchiving(oldTip model.BlockHash) bool
}
