package bloom

import "errors"

const (
	// MaxK is the largest number of hash functions a family may carry.
	MaxK uint8 = 32

	// MaxWidth is the largest declared item width, in bytes.
	MaxWidth = 1024

	// BitOrderLSB0 means bit 0 is the least-significant bit of byte 0.
	BitOrderLSB0 uint8 = 0
)

var (
	ErrBadElemSize    = errors.New("bloom: element width does not match the hash family")
	ErrBadFormat      = errors.New("bloom: serialized filter has the wrong length")
	ErrNotInitialized = errors.New("bloom: filter has no hash family bound")

	ErrBadMBits      = errors.New("bloom: mBits must be a non zero multiple of 8")
	ErrBadK          = errors.New("bloom: k invalid for the declared bit width")
	ErrBadWidth      = errors.New("bloom: item width invalid")
	ErrUnknownFamily = errors.New("bloom: unknown hash family kind")
	ErrBadHashers    = errors.New("bloom: hasher count does not match k")

	ErrBadIndex       = errors.New("bloom: hasher returned an index outside the filter")
	ErrBitsMismatch   = errors.New("bloom: bit stores differ in length")
	ErrParamsMismatch = errors.New("bloom: filters built with different parameters")
)

// FamilyKind names the seeded mixing primitive behind a hash family.
type FamilyKind uint8

const (
	FamilyCustom FamilyKind = iota
	FamilyMurmur3
	FamilySipHash
	FamilySHA256
)

func (k FamilyKind) String() string {
	switch k {
	case FamilyCustom:
		return "custom"
	case FamilyMurmur3:
		return "murmur3"
	case FamilySipHash:
		return "siphash"
	case FamilySHA256:
		return "sha256"
	default:
		return "unknown"
	}
}

// Params identifies everything two filters must agree on before they can be
// merged or exchanged. It is comparable.
type Params struct {
	// Family is the FamilyKind name, or the caller supplied name of a custom
	// family.
	Family string
	MBits  uint32
	K      uint8
	Width  int
}
