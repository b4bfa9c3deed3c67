package ordering

import (
	"fmt"
	"sync"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-roundbloom/bloom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrackerObserveAndSeal(t *testing.T) {
	r := NewRoundTracker(WithRound(5), WithLogger(logger.Sugar.WithServiceName("TestRoundTracker")))
	require.Equal(t, uint64(5), r.Round())
	require.Nil(t, r.Local())

	h1, h2 := batchHash("h1"), batchHash("h2")
	require.NoError(t, r.Observe(h1))
	require.NoError(t, r.Observe(h2))
	require.True(t, r.Seen(h1))
	require.False(t, r.PeerMayContain(h1))

	wire := r.Seal()
	require.Equal(t, wire, r.Seal())

	local := r.Local()
	require.NotNil(t, local)
	require.True(t, local.MayContain(h1))
	require.True(t, local.MayContain(h2))
	require.Equal(t, wire, local.Bytes())

	require.ErrorIs(t, r.Observe(batchHash("h3")), ErrRoundSealed)
	require.Equal(t, wire, local.Bytes())
}

func TestRoundTrackerMergePeer(t *testing.T) {
	r := NewRoundTracker()
	require.NoError(t, r.Observe(batchHash("mine")))

	peer := NewBloomFilter256()
	peer.Insert(batchHash("theirs"))
	wire := peer.Bytes()

	require.NoError(t, r.MergePeer(0, "peer-a", wire[:]))
	require.True(t, r.PeerMayContain(batchHash("theirs")))
	require.True(t, r.Seen(batchHash("theirs")))
	require.True(t, r.Seen(batchHash("mine")))
	require.True(t, r.Peers().Equal(peer))

	// Stale and malformed snapshots change nothing.
	other := NewBloomFilter256()
	other.Insert(batchHash("stale"))
	stale := other.Bytes()
	require.ErrorIs(t, r.MergePeer(1, "peer-b", stale[:]), ErrRoundMismatch)
	require.ErrorIs(t, r.MergePeer(0, "peer-c", stale[:7]), bloom.ErrBadFormat)
	require.True(t, r.Peers().Equal(peer))
}

func TestRoundTrackerConcurrentPeers(t *testing.T) {
	r := NewRoundTracker()
	filters, all := peerFilters(16, 4)

	var wg sync.WaitGroup
	for i, f := range filters {
		wg.Add(1)
		go func(i int, f *BloomFilter256) {
			defer wg.Done()
			wire := f.Bytes()
			assert.NoError(t, r.MergePeer(0, fmt.Sprintf("peer-%d", i), wire[:]))
		}(i, f)
	}
	wg.Wait()

	require.True(t, r.Peers().Equal(sequentialUnion(filters)))
	for _, h := range all {
		require.True(t, r.PeerMayContain(h))
	}
}

func TestRoundTrackerNextRound(t *testing.T) {
	r := NewRoundTracker()
	h := batchHash("round-0")
	require.NoError(t, r.Observe(h))
	peer := NewBloomFilter256()
	peer.Insert(batchHash("peer-round-0"))
	wire := peer.Bytes()
	require.NoError(t, r.MergePeer(0, "peer", wire[:]))
	r.Seal()
	sealed := r.Local()

	require.Equal(t, uint64(1), r.NextRound())
	require.Equal(t, uint64(1), r.Round())

	require.Nil(t, r.Local())
	require.False(t, r.Seen(h))
	require.False(t, r.PeerMayContain(batchHash("peer-round-0")))
	require.True(t, r.Peers().IsEmpty())
	require.NoError(t, r.Observe(batchHash("round-1")))

	// The previous round's snapshot is still intact for anyone holding it.
	require.True(t, sealed.MayContain(h))
}

func TestNewRoundTrackerWithoutProcessLogger(t *testing.T) {
	saved := logger.Sugar
	logger.Sugar = nil
	defer func() { logger.Sugar = saved }()

	r := NewRoundTracker()
	h := batchHash("unlogged")
	require.NoError(t, r.Observe(h))
	wire := r.Seal()
	require.NoError(t, r.MergePeer(0, "peer", wire[:]))
	require.ErrorIs(t, r.MergePeer(3, "peer", wire[:]), ErrRoundMismatch)
	require.True(t, r.PeerMayContain(h))
	require.Equal(t, uint64(1), r.NextRound())
}

func TestRoundTrackerMergeDuringNextRound(t *testing.T) {
	r := NewRoundTracker()
	filters, _ := peerFilters(64, 2)
	r.mu.Lock()
	old := r.peers
	r.mu.Unlock()

	merged := make([]bool, len(filters))
	var wg sync.WaitGroup
	for i, f := range filters {
		wg.Add(1)
		go func(i int, f *BloomFilter256) {
			defer wg.Done()
			wire := f.Bytes()
			err := r.MergePeer(0, fmt.Sprintf("peer-%d", i), wire[:])
			if err != nil {
				assert.ErrorIs(t, err, ErrRoundMismatch)
				return
			}
			merged[i] = true
		}(i, f)
	}
	r.NextRound()
	closed := old.Snapshot()
	wg.Wait()

	// Nothing lands in a round's union after the round has ended, and every
	// accepted snapshot is in it.
	require.True(t, closed.Equal(old.Snapshot()))
	want := NewBloomFilter256()
	for i, ok := range merged {
		if ok {
			want.Merge(filters[i])
		}
	}
	require.True(t, closed.Equal(want))
}
