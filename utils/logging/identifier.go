package logging

import (
	"encoding/hex"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
)

// ID returns the raw bytes of a Hash, for use with zerolog's Hex field.
func ID(h model.Hash) []byte {
	return h[:]
}

// IDs renders a slice of hashes as hex strings, for use with zerolog's
// Strs field.
func IDs(hashes []model.Hash) []string {
	ss := make([]string, 0, len(hashes))
	for _, h := range hashes {
		ss = append(ss, hex.EncodeToString(h[:]))
	}
	return ss
}

// VoterIDs renders a slice of voter identities as hex strings.
func VoterIDs(ids []model.VoterID) []string {
	ss := make([]string, 0, len(ids))
	for _, id := range ids {
		ss = append(ss, hex.EncodeToString(id[:]))
	}
	return ss
}
