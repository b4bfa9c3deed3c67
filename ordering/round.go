package ordering

import (
	"fmt"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
	"go.uber.org/zap"
)

// RoundTracker owns the filters of one ordering round: the local filter of
// batches this node observed, and the union of snapshots received from
// peers. When and why a round ends is decided by the caller; NextRound only
// discards the old filters.
type RoundTracker struct {
	log logger.Logger

	mu     sync.Mutex
	round  uint64
	local  *BloomFilter256
	sealed bool
	peers  *SharedFilter
}

// NewRoundTracker returns a tracker for round 0 unless WithRound says
// otherwise. Without WithLogger it logs through the process logger, or
// discards log output when logger.New has not been called.
func NewRoundTracker(opts ...Option) *RoundTracker {
	o := RoundOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Log == nil {
		o.Log = defaultLogger()
	}
	return &RoundTracker{
		log:   o.Log,
		round: o.Round,
		local: NewBloomFilter256(),
		peers: NewSharedFilter(),
	}
}

func defaultLogger() logger.Logger {
	if logger.Sugar == nil {
		return &logger.WrappedLogger{SugaredLogger: zap.NewNop().Sugar()}
	}
	return logger.Sugar.WithServiceName("roundbloom")
}

// Round returns the current round number.
func (r *RoundTracker) Round() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round
}

// Observe records a batch hash seen or proposed by this node.
func (r *RoundTracker) Observe(h Hash) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("%w: round %d", ErrRoundSealed, r.round)
	}
	r.local.Insert(h)
	r.log.Debugf("round %d: observed %s", r.round, h)
	return nil
}

// Seal ends the observation phase and returns the local snapshot in wire
// form. Sealing twice returns the same bytes.
func (r *RoundTracker) Seal() [FilterBytes]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sealed {
		r.sealed = true
		r.log.Infof("round %d: sealed local filter, %d bits set", r.round, r.local.Count())
	}
	return r.local.Bytes()
}

// Local returns the sealed local filter, or nil before Seal. The result is
// never mutated again and may be read from any goroutine.
func (r *RoundTracker) Local() *BloomFilter256 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sealed {
		return nil
	}
	return r.local
}

// MergePeer folds a peer's snapshot for round into the peer union.
// Snapshots for any other round, and malformed snapshots, are rejected. The
// round check and the merge happen under one lock, so a snapshot accepted
// here is always part of that round's union.
func (r *RoundTracker) MergePeer(round uint64, peer string, buf []byte) error {
	snap, decodeErr := DecodeBloomFilter256(buf)

	r.mu.Lock()
	defer r.mu.Unlock()
	if round != r.round {
		r.log.Infof("round %d: ignoring snapshot from %s for round %d", r.round, peer, round)
		return fmt.Errorf("%w: got %d, current %d", ErrRoundMismatch, round, r.round)
	}
	if decodeErr != nil {
		r.log.Infof("round %d: rejected snapshot from %s: %v", r.round, peer, decodeErr)
		return decodeErr
	}
	r.peers.Merge(snap)
	r.log.Debugf("round %d: merged snapshot from %s", r.round, peer)
	return nil
}

// PeerMayContain reports whether any merged peer snapshot may contain h.
// Callers use it to skip fetching batches peers already hold.
func (r *RoundTracker) PeerMayContain(h Hash) bool {
	r.mu.Lock()
	peers := r.peers
	r.mu.Unlock()
	return peers.MayContain(h)
}

// Seen reports whether h may have been observed locally or by any peer.
func (r *RoundTracker) Seen(h Hash) bool {
	r.mu.Lock()
	local, peers := r.local.MayContain(h), r.peers
	r.mu.Unlock()
	return local || peers.MayContain(h)
}

// Peers returns a copy of the current peer union.
func (r *RoundTracker) Peers() *BloomFilter256 {
	r.mu.Lock()
	peers := r.peers
	r.mu.Unlock()
	return peers.Snapshot()
}

// NextRound discards both filters and starts the next round with fresh,
// empty ones. It returns the new round number.
func (r *RoundTracker) NextRound() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Infof("round %d: discarding filters", r.round)
	r.round++
	r.local = NewBloomFilter256()
	r.sealed = false
	r.peers = NewSharedFilter()
	return r.round
}
