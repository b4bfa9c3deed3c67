package ordering

import (
	"github.com/forestrie/go-roundbloom/bloom"
)

// BloomFilter256 is the round filter exchanged between ordering nodes:
// 256 bits, 4 murmur3 hash functions over 32 byte hashes.
//
// Because every BloomFilter256 shares one family, insert and merge cannot
// fail. The zero value is an empty filter.
type BloomFilter256 struct {
	f *bloom.Filter
}

// NewBloomFilter256 returns an empty filter.
func NewBloomFilter256() *BloomFilter256 {
	return &BloomFilter256{f: bloom.New(family256)}
}

// DecodeBloomFilter256 parses the 32 byte wire form. Any other length fails
// with bloom.ErrBadFormat.
func DecodeBloomFilter256(buf []byte) (*BloomFilter256, error) {
	f, err := bloom.Decode(family256, buf)
	if err != nil {
		return nil, err
	}
	return &BloomFilter256{f: f}, nil
}

func (b *BloomFilter256) init() *bloom.Filter {
	if b.f == nil {
		b.f = bloom.New(family256)
	}
	return b.f
}

// Insert records h. It must not be called concurrently with any other method.
func (b *BloomFilter256) Insert(h Hash) {
	if err := b.init().Insert(h[:]); err != nil {
		// Hash always has the family width.
		panic(err)
	}
}

// MayContain reports false if h was definitely never inserted.
func (b *BloomFilter256) MayContain(h Hash) bool {
	if b.f == nil {
		return false
	}
	ok, err := b.f.MayContain(h[:])
	if err != nil {
		panic(err)
	}
	return ok
}

// Merge ORs other into b.
func (b *BloomFilter256) Merge(other *BloomFilter256) {
	if other.f == nil {
		return
	}
	if err := b.init().Merge(other.f); err != nil {
		panic(err)
	}
}

func (b *BloomFilter256) Bytes() [FilterBytes]byte {
	var out [FilterBytes]byte
	if b.f != nil {
		copy(out[:], b.f.Bytes())
	}
	return out
}

func (b *BloomFilter256) Clone() *BloomFilter256 {
	if b.f == nil {
		return NewBloomFilter256()
	}
	return &BloomFilter256{f: b.f.Clone()}
}

func (b *BloomFilter256) Equal(other *BloomFilter256) bool {
	return b.Bytes() == other.Bytes()
}

func (b *BloomFilter256) IsEmpty() bool { return b.f == nil || b.f.IsEmpty() }

// Count returns the number of set bits.
func (b *BloomFilter256) Count() uint32 {
	if b.f == nil {
		return 0
	}
	return b.f.Count()
}

func (b *BloomFilter256) MarshalBinary() ([]byte, error) {
	out := b.Bytes()
	return out[:], nil
}

func (b *BloomFilter256) UnmarshalBinary(data []byte) error {
	return b.init().UnmarshalBinary(data)
}

func (b *BloomFilter256) MarshalCBOR() ([]byte, error) {
	if b.f == nil {
		return NewBloomFilter256().MarshalCBOR()
	}
	return b.f.MarshalCBOR()
}

func (b *BloomFilter256) UnmarshalCBOR(data []byte) error {
	return b.init().UnmarshalCBOR(data)
}
