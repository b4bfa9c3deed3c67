package ordering

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SharedFilter is a merge destination that many goroutines may fold peer
// snapshots into. Merges are serialized; reads take a shared lock.
type SharedFilter struct {
	mu sync.RWMutex
	f  *BloomFilter256
}

// NewSharedFilter returns an empty merge destination.
func NewSharedFilter() *SharedFilter {
	return &SharedFilter{f: NewBloomFilter256()}
}

// Merge ORs other into s.
func (s *SharedFilter) Merge(other *BloomFilter256) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.Merge(other)
}

// MergeBytes decodes a peer's wire form and merges it. A malformed buffer is
// rejected before the lock is taken, leaving s unchanged.
func (s *SharedFilter) MergeBytes(buf []byte) error {
	other, err := DecodeBloomFilter256(buf)
	if err != nil {
		return err
	}
	s.Merge(other)
	return nil
}

// Insert records h in s.
func (s *SharedFilter) Insert(h Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.Insert(h)
}

func (s *SharedFilter) MayContain(h Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.MayContain(h)
}

// Snapshot returns an independent copy of the current state.
func (s *SharedFilter) Snapshot() *BloomFilter256 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Clone()
}

// Aggregate returns the union of filters by pairwise tree reduction, merging
// the pairs of each level concurrently. The inputs are not modified and nil
// entries are skipped. Cancelling ctx abandons the reduction.
func Aggregate(ctx context.Context, filters []*BloomFilter256) (*BloomFilter256, error) {
	level := make([]*BloomFilter256, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			level = append(level, f)
		}
	}
	if len(level) == 0 {
		return NewBloomFilter256(), nil
	}
	if len(level) == 1 {
		return level[0].Clone(), nil
	}

	for len(level) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next := make([]*BloomFilter256, (len(level)+1)/2)
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i+1 < len(level); i += 2 {
			left, right, slot := level[i], level[i+1], i/2
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				u := left.Clone()
				u.Merge(right)
				next[slot] = u
				return nil
			})
		}
		if len(level)%2 == 1 {
			next[len(next)-1] = level[len(level)-1]
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		level = next
	}
	return level[0], nil
}
