package voter

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
)

// Locked collapses the legacy CTransactionVoteTracker / CProgenitorVoteTracker /
// CProgenitorBlockTracker trio (spec.md §5, "Legacy trackers") into the single
// thin adapter the design note prescribes: one exclusive lock guarding one
// Voter instance for the duration of each entry-point call.
type Locked struct {
	mu    sync.Mutex
	inner *Voter
	// generation increments on every UpdateTip, so a caller holding a stale
	// Snapshot taken before a tip change can detect it without taking mu.
	generation atomic.Uint64
}

// NewLocked wraps v for safe use across goroutines.
func NewLocked(v *Voter) *Locked {
	return &Locked{inner: v}
}

// Generation returns the current tip generation counter.
func (l *Locked) Generation() uint64 { return l.generation.Load() }

func (l *Locked) UpdateTip(newTip model.BlockHash) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.UpdateTip(newTip)
	l.generation.Inc()
}

func (l *Locked) ApplyTx(tx model.Tx) Output {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.ApplyTx(tx)
}

func (l *Locked) ApplyViceBlock(vb model.ViceBlock) Output {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.ApplyViceBlock(vb)
}

func (l *Locked) ApplyTxVote(vote model.TxVote) Output {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.ApplyTxVote(vote)
}

func (l *Locked) ApplyRoundVote(vote model.RoundVote) Output {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.ApplyRoundVote(vote)
}

func (l *Locked) OnRoundTooLong() Output {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.OnRoundTooLong()
}

// Snapshot returns a read-only snapshot of voter state under the lock.
func (l *Locked) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Snapshot()
}

// GetCurrentRound returns the current round under the lock.
func (l *Locked) GetCurrentRound() uint16 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.GetCurrentRound()
}

// ListCommittedTxs returns the currently committed transactions under the lock.
func (l *Locked) ListCommittedTxs() map[model.TxID]model.Tx {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.ListCommittedTxs()
}
