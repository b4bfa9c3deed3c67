package bloom

import (
	"fmt"
	"math/bits"
)

// Hasher maps an item to a bit index in [0, mBits). Filters reject any
// item for which a hasher returns an index outside that range.
type Hasher interface {
	Index(item []byte) uint32
}

// Reduce maps a 64 bit hash onto [0, mBits). Power of two widths are masked,
// any other width uses the high word of h*mBits.
func Reduce(h uint64, mBits uint32) uint32 {
	if mBits&(mBits-1) == 0 {
		return uint32(h & uint64(mBits-1))
	}
	hi, _ := bits.Mul64(h, uint64(mBits))
	return uint32(hi)
}

type seededHasher struct {
	mix   MixFunc
	seed  uint32
	mBits uint32
}

func (h seededHasher) Index(item []byte) uint32 {
	return Reduce(h.mix(h.seed, item), h.mBits)
}

// NewSeededHasher binds mix to the seed derived from seedIndex and width.
func NewSeededHasher(mix MixFunc, seedIndex uint8, width int, mBits uint32) Hasher {
	return seededHasher{mix: mix, seed: DeriveSeed(seedIndex, width), mBits: mBits}
}

// Family is an ordered, stateless set of k hash functions sharing a bit
// width and an item width. A Family may be shared freely between filters and
// goroutines.
type Family struct {
	params  Params
	hashers []Hasher
}

// NewFamily builds the k functions of kind by partially applying its mixing
// primitive over seed indices 0..k-1.
func NewFamily(kind FamilyKind, mBits uint32, k uint8, width int) (*Family, error) {
	mix, err := mixFor(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, kind)
	}
	if err := checkParams(mBits, k, width); err != nil {
		return nil, err
	}

	hashers := make([]Hasher, k)
	for i := range hashers {
		hashers[i] = NewSeededHasher(mix, uint8(i), width, mBits)
	}
	return &Family{
		params:  Params{Family: kind.String(), MBits: mBits, K: k, Width: width},
		hashers: hashers,
	}, nil
}

// NewCustomFamily wraps caller supplied hashers. name distinguishes the
// family from every other family for merge purposes, so two custom families
// only merge when they share name, mBits, k and width.
func NewCustomFamily(name string, mBits uint32, width int, hashers ...Hasher) (*Family, error) {
	if name == "" || reservedName(name) {
		return nil, fmt.Errorf("%w: name %q", ErrUnknownFamily, name)
	}
	if len(hashers) == 0 || len(hashers) > int(MaxK) {
		return nil, fmt.Errorf("%w: %d", ErrBadHashers, len(hashers))
	}
	k := uint8(len(hashers))
	if err := checkParams(mBits, k, width); err != nil {
		return nil, err
	}
	return &Family{
		params:  Params{Family: name, MBits: mBits, K: k, Width: width},
		hashers: append([]Hasher(nil), hashers...),
	}, nil
}

func reservedName(name string) bool {
	for _, kind := range []FamilyKind{FamilyCustom, FamilyMurmur3, FamilySipHash, FamilySHA256} {
		if name == kind.String() {
			return true
		}
	}
	return false
}

func checkParams(mBits uint32, k uint8, width int) error {
	if err := CheckMBits(mBits); err != nil {
		return err
	}
	if err := CheckK(mBits, k); err != nil {
		return err
	}
	return CheckWidth(width)
}

// Params returns the identity two filters must share to merge.
func (f *Family) Params() Params { return f.params }

// K returns the number of hash functions.
func (f *Family) K() int { return len(f.hashers) }

// MBits returns the filter width in bits.
func (f *Family) MBits() uint32 { return f.params.MBits }

// Width returns the item width in bytes.
func (f *Family) Width() int { return f.params.Width }

// Indices appends the k bit indices of item to dst. The caller is
// responsible for the item width.
func (f *Family) Indices(dst []uint32, item []byte) []uint32 {
	for _, h := range f.hashers {
		dst = append(dst, h.Index(item))
	}
	return dst
}

// Hasher returns function i.
func (f *Family) Hasher(i int) Hasher { return f.hashers[i] }
