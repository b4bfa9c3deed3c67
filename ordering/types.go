package ordering

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/forestrie/go-roundbloom/bloom"
)

const (
	// FilterBits is the bit width of a round filter.
	FilterBits uint32 = 256

	// FilterBytes is the size of the wire form of a round filter.
	FilterBytes = int(FilterBits / 8)

	// HashFuncs is the number of hash functions (k).
	HashFuncs uint8 = 4

	// HashBytes is the width of an inserted item.
	HashBytes = 32
)

var (
	ErrBadHashSize   = errors.New("ordering: hash must be 32 bytes")
	ErrRoundSealed   = errors.New("ordering: round already sealed")
	ErrRoundMismatch = errors.New("ordering: snapshot is not for the current round")
)

// Hash is an opaque transaction batch hash. The filter never interprets it.
type Hash [HashBytes]byte

// HashFromBytes copies b into a Hash.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashBytes {
		return h, fmt.Errorf("%w: got %d", ErrBadHashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// family256 is shared by every round filter; families are stateless.
var family256 = mustFamily(bloom.NewFamily(bloom.FamilyMurmur3, FilterBits, HashFuncs, HashBytes))

func mustFamily(f *bloom.Family, err error) *bloom.Family {
	if err != nil {
		panic(err)
	}
	return f
}

// Params returns the parameters every participating node must share.
func Params() bloom.Params { return family256.Params() }
