package p2p

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
)

func TestRoundTrip_RoundVoteMessage(t *testing.T) {
	var tip model.Hash
	tip[0] = 0xAA
	var subject model.Hash
	subject[0] = 0xBB

	msg := RoundVoteMessage{
		Tip:   tip,
		Round: 7,
		Choice: VoteChoiceWire{
			Subject:  subject,
			Decision: int8(model.DecisionYes),
		},
		Signature: []byte{1, 2, 3, 4},
	}

	encoded, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	got, ok := decoded.(*RoundVoteMessage)
	require.True(t, ok)
	assert.Equal(t, msg.Tip, got.Tip)
	assert.Equal(t, msg.Round, got.Round)
	assert.Equal(t, msg.Choice, got.Choice)
	assert.Equal(t, msg.Signature, got.Signature)
}

func TestRoundTrip_TxVoteMessage(t *testing.T) {
	var tip model.Hash
	tip[1] = 0x11

	msg := TxVoteMessage{
		Tip:   tip,
		Round: 3,
		Choices: []VoteChoiceWire{
			{Decision: int8(model.DecisionYes)},
			{Decision: int8(model.DecisionPass)},
		},
		Signature: []byte{9, 9},
	}

	encoded, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	got, ok := decoded.(*TxVoteMessage)
	require.True(t, ok)
	assert.Equal(t, msg.Choices, got.Choices)
}

func TestChoiceConversionRoundTrip(t *testing.T) {
	c := model.Choice{Decision: model.DecisionNo}
	c.Subject[2] = 0x42

	wire := FromChoice(c)
	back := wire.ToChoice()
	assert.Equal(t, c, back)
}
