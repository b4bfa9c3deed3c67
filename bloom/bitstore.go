package bloom

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// BitStore is a fixed length array of mBits bits. Bits are only ever set,
// never cleared.
//
// The serialized form is mBits/8 bytes, LSB0: bit i lives in byte i/8 at
// position i%8.
type BitStore struct {
	mBits uint32
	bits  *bitset.BitSet
}

// NewBitStore returns a zeroed store of mBits bits.
func NewBitStore(mBits uint32) (*BitStore, error) {
	if err := CheckMBits(mBits); err != nil {
		return nil, err
	}
	return &BitStore{mBits: mBits, bits: bitset.New(uint(mBits))}, nil
}

// BitStoreFromBytes decodes the LSB0 form produced by Bytes.
func BitStoreFromBytes(mBits uint32, buf []byte) (*BitStore, error) {
	s, err := NewBitStore(mBits)
	if err != nil {
		return nil, err
	}
	if uint32(len(buf)) != BytesForBits(mBits) {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadFormat, len(buf), BytesForBits(mBits))
	}
	for byteIdx, b := range buf {
		for bit := uint(0); b != 0; bit++ {
			if b&1 != 0 {
				s.bits.Set(uint(byteIdx)*8 + bit)
			}
			b >>= 1
		}
	}
	return s, nil
}

// Len returns mBits.
func (s *BitStore) Len() uint32 { return s.mBits }

func (s *BitStore) checkIndex(i uint32) {
	if i >= s.mBits {
		panic(fmt.Sprintf("bloom: bit index %d out of range [0, %d)", i, s.mBits))
	}
}

// Set sets bit i. It panics if i >= Len().
func (s *BitStore) Set(i uint32) {
	s.checkIndex(i)
	s.bits.Set(uint(i))
}

// Test reports bit i. It panics if i >= Len().
func (s *BitStore) Test(i uint32) bool {
	s.checkIndex(i)
	return s.bits.Test(uint(i))
}

// MergeOr ORs other into s. On a length mismatch s is left untouched.
func (s *BitStore) MergeOr(other *BitStore) error {
	if other.mBits != s.mBits {
		return fmt.Errorf("%w: %d != %d", ErrBitsMismatch, s.mBits, other.mBits)
	}
	s.bits.InPlaceUnion(other.bits)
	return nil
}

// Count returns the number of set bits.
func (s *BitStore) Count() uint32 { return uint32(s.bits.Count()) }

// IsZero reports whether no bit is set.
func (s *BitStore) IsZero() bool { return s.bits.None() }

// Equal reports whether both stores have the same length and bits.
func (s *BitStore) Equal(other *BitStore) bool {
	return s.mBits == other.mBits && s.bits.Equal(other.bits)
}

// Clone returns an independent copy of s.
func (s *BitStore) Clone() *BitStore {
	return &BitStore{mBits: s.mBits, bits: s.bits.Clone()}
}

// Bytes returns the LSB0 serialized form, always BytesForBits(Len()) long.
func (s *BitStore) Bytes() []byte {
	out := make([]byte, BytesForBits(s.mBits))
	words := s.bits.Bytes()
	for j := range out {
		w := j >> 3
		if w >= len(words) {
			break
		}
		out[j] = byte(words[w] >> (uint(j&7) * 8))
	}
	return out
}
