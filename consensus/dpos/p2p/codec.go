package p2p

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// envelope codes, analogous to network/codec/cbor/decoder.go's single-byte
// dispatch prefix.
const (
	codeTxVote    byte = 1
	codeRoundVote byte = 2
	codeViceBlock byte = 3
)

// Encode serializes msg with a one-byte envelope code prefix identifying its
// concrete type, so a stream of mixed message kinds can be dispatched on
// Decode without out-of-band type information.
func Encode(msg interface{}) ([]byte, error) {
	var code byte
	switch msg.(type) {
	case TxVoteMessage, *TxVoteMessage:
		code = codeTxVote
	case RoundVoteMessage, *RoundVoteMessage:
		code = codeRoundVote
	case ViceBlockMessage, *ViceBlockMessage:
		code = codeViceBlock
	default:
		return nil, fmt.Errorf("p2p: unsupported message type %T", msg)
	}

	payload, err := cbor.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("p2p: could not encode payload: %w", err)
	}

	out := make([]byte, 0, len(payload)+1)
	out = append(out, code)
	out = append(out, payload...)
	return out, nil
}

// Decode parses an envelope produced by Encode and returns the concrete
// message value.
func Decode(data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("p2p: empty envelope")
	}
	code, payload := data[0], data[1:]

	var v interface{}
	switch code {
	case codeTxVote:
		v = &TxVoteMessage{}
	case codeRoundVote:
		v = &RoundVoteMessage{}
	case codeViceBlock:
		v = &ViceBlockMessage{}
	default:
		return nil, fmt.Errorf("p2p: unknown envelope code %d", code)
	}

	if err := cbor.Unmarshal(payload, v); err != nil {
		return nil, fmt.Errorf("p2p: could not decode payload for code %d: %w", code, err)
	}
	return v, nil
}
