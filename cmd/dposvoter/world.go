package main

import "github.com/crypticcoin/dpos/consensus/dpos/model"

// noopWorld is a placeholder world.Callbacks: the mempool/chain-state
// validation and p2p transport this binary needs from its host are outside
// the voting core's scope (spec.md §1 Non-goals). A real deployment
// replaces this with an adapter into the host's mempool and chainstate.
type noopWorld struct{}

func (noopWorld) ValidateTxs(map[model.TxID]model.Tx) bool { return true }

func (noopWorld) ValidateBlock(model.ViceBlock, map[model.TxID]model.Tx, bool) bool {
	return true
}

func (noopWorld) AllowArchiving(model.BlockHash) bool { return false }
