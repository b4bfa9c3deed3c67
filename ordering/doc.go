// Package ordering instantiates the round filter used by ordering service
// nodes to advertise which transaction batches they have observed.
//
// BloomFilter256 fixes the parameters (256 bits, 4 murmur3 hash functions,
// 32 byte items) so that filters from different nodes are always mergeable.
// Its wire form is exactly 32 bytes, bit i in byte i/8 at position i%8.
//
// A RoundTracker owns a round's filters. The local filter has a single
// writer until Seal; after that it is an immutable snapshot. Peer snapshots
// are folded into a SharedFilter, which serializes merges. Aggregate unions
// many snapshots by concurrent tree reduction.
package ordering
