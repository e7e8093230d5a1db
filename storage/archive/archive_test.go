package archive

import (
	"os"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
	"github.com/crypticcoin/dpos/consensus/dpos/voter"
	"github.com/crypticcoin/dpos/consensus/dpos/world"
)

// runWithBadgerDB mirrors utils/unittest.RunWithBadgerDB: a fresh on-disk
// badger instance per test, torn down on return.
func runWithBadgerDB(t *testing.T, f func(*badger.DB)) {
	t.Helper()
	dir, err := os.MkdirTemp("", "dpos-archive")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	defer db.Close()

	f(db)
}

type acceptAllWorld struct{}

func (acceptAllWorld) ValidateTxs(map[model.TxID]model.Tx) bool { return true }
func (acceptAllWorld) ValidateBlock(model.ViceBlock, map[model.TxID]model.Tx, bool) bool {
	return true
}
func (acceptAllWorld) AllowArchiving(model.BlockHash) bool { return false }

var _ world.Callbacks = acceptAllWorld{}

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func TestInsertAndReplay_ViceBlock(t *testing.T) {
	runWithBadgerDB(t, func(db *badger.DB) {
		a := New(db, testLogger())

		var tip model.BlockHash
		tip[0] = 0xAA
		block := model.ViceBlock{Hash: model.BlockHash{0xB1}, HashPrevBlock: tip, Round: 1}

		require.NoError(t, a.InsertViceBlock(block))
		// duplicate insert must not error, per idempotent apply* semantics.
		require.NoError(t, a.InsertViceBlock(block))

		v, err := voter.New(acceptAllWorld{}, testLogger(), 4, 3)
		require.NoError(t, err)
		v.SetVoting(true, model.VoterID{0x01})
		v.UpdateTip(tip)

		require.NoError(t, a.Replay(v))

		require.True(t, v.HasViceBlock(block.Hash))
	})
}

func TestInsertAndReplay_Votes(t *testing.T) {
	runWithBadgerDB(t, func(db *badger.DB) {
		a := New(db, testLogger())

		var tip model.BlockHash
		tip[0] = 0xAA
		block := model.BlockHash{0xB1}

		rv := model.RoundVote{
			Voter: model.VoterID{0x02},
			Tip:   tip,
			Round: 1,
			Choice: model.Choice{
				Subject:  model.Hash(block),
				Decision: model.DecisionYes,
			},
		}
		require.NoError(t, a.InsertRoundVote(rv))
		require.NoError(t, a.InsertRoundVote(rv))

		v, err := voter.New(acceptAllWorld{}, testLogger(), 4, 3)
		require.NoError(t, err)
		v.SetVoting(true, model.VoterID{0x01})
		v.UpdateTip(tip)

		require.NoError(t, a.Replay(v))

		require.True(t, v.HasRoundVoteFrom(1, rv.Voter))
	})
}
