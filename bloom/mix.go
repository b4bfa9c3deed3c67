package bloom

import (
	"crypto/sha256"

	"github.com/dchest/siphash"
	"github.com/spaolacci/murmur3"
)

const (
	// seedStride spreads seed indices across the 32 bit seed space so that
	// adjacent functions start from well separated states.
	seedStride uint32 = 0xfba4c795

	sha256Domain = 0xB0

	sipKey0 uint64 = 0x736f6d6570736575
	sipKey1 uint64 = 0x646f72616e646f6d
)

// MixFunc is a seeded mixing primitive. A family partially applies one
// MixFunc over seeds derived from 0..k-1.
type MixFunc func(seed uint32, item []byte) uint64

// DeriveSeed returns the primitive seed for hash function seedIndex over
// items of the declared width.
func DeriveSeed(seedIndex uint8, width int) uint32 {
	return uint32(seedIndex)*seedStride + uint32(width)
}

// Murmur3Mix is the 64 bit MurmurHash3 x64 variant, low half.
func Murmur3Mix(seed uint32, item []byte) uint64 {
	return murmur3.Sum64WithSeed(item, seed)
}

// SipHashMix is SipHash-2-4 keyed by the seed.
func SipHashMix(seed uint32, item []byte) uint64 {
	s := uint64(seed)
	return siphash.Hash(sipKey0^s, sipKey1^(s<<32|s), item)
}

// SHA256Mix computes SHA-256( 0xB0 || seed_be4 || item ) and returns the
// first 8 bytes big endian.
func SHA256Mix(seed uint32, item []byte) uint64 {
	h := sha256.New()
	var prefix [5]byte
	prefix[0] = sha256Domain
	writeU32BE(prefix[1:], seed)
	_, _ = h.Write(prefix[:])
	_, _ = h.Write(item)

	var sum [sha256.Size]byte
	return readU64BE(h.Sum(sum[:0])[0:8])
}

func mixFor(kind FamilyKind) (MixFunc, error) {
	switch kind {
	case FamilyMurmur3:
		return Murmur3Mix, nil
	case FamilySipHash:
		return SipHashMix, nil
	case FamilySHA256:
		return SHA256Mix, nil
	default:
		return nil, ErrUnknownFamily
	}
}
