package model

// Tx is an instant-finality transaction. The voter forwards Tx opaquely to the
// external validator and never interprets its contents.
type Tx struct {
	ID     TxID
	Raw    []byte
	Instant bool
}

// ViceBlock is a candidate next block proposed for round voting. Vtx is
// forwarded to the external block validator as-is; the voter never mutates it
// (see DESIGN.md, "tranformProgenitorBlock" open question).
type ViceBlock struct {
	Hash          BlockHash
	HashPrevBlock BlockHash
	Round         uint16
	Vtx           []Tx
}

// BlockToSubmit is a fully-approved vice-block ready for the host to build a
// block and its quorum certificate from.
type BlockToSubmit struct {
	Block      ViceBlock
	ApprovedBy []VoterID
}
