package model

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// salt is the fixed 16-byte protocol constant mixed into every hash-for-signing,
// per spec.md §6.
var salt = [16]byte{0x4D, 0x48, 0x7A, 0x52, 0x5D, 0x4D, 0x37, 0x78, 0x42, 0x36, 0x5B, 0x64, 0x44, 0x79, 0x59, 0x4F}

// HashForSigning computes the deterministic digest over tip, round, choice and
// the fixed salt that masternodes sign over when casting a vote. It is stable
// across equivalent reorderings of unrelated voter state, since it is a pure
// function of its three arguments.
func HashForSigning(tip BlockHash, round uint16, choice Choice) Hash {
	h := sha3.New256()
	h.Write(tip[:])

	var roundBuf [2]byte
	binary.LittleEndian.PutUint16(roundBuf[:], round)
	h.Write(roundBuf[:])

	h.Write(choice.Subject[:])
	h.Write([]byte{byte(choice.Decision)})
	h.Write(salt[:])

	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
