package bloom

import "fmt"

// Filter is a Bloom filter: one BitStore owned outright plus a shared,
// stateless Family.
//
// Filter does no locking. A single owner inserts; once the owner stops
// inserting, the filter may be read from any number of goroutines.
type Filter struct {
	family *Family
	bits   *BitStore
}

// New returns an empty filter for family.
func New(family *Family) *Filter {
	// The family has already validated mBits.
	bits, err := NewBitStore(family.MBits())
	if err != nil {
		panic(err)
	}
	return &Filter{family: family, bits: bits}
}

// Decode rebuilds a filter for family from its serialized bytes.
func Decode(family *Family, buf []byte) (*Filter, error) {
	bits, err := BitStoreFromBytes(family.MBits(), buf)
	if err != nil {
		return nil, err
	}
	return &Filter{family: family, bits: bits}, nil
}

func (f *Filter) Family() *Family { return f.family }
func (f *Filter) Params() Params  { return f.family.Params() }

func (f *Filter) checkItem(item []byte) error {
	if len(item) != f.family.Width() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBadElemSize, len(item), f.family.Width())
	}
	return nil
}

// indices checks item and returns its k bit indices. No index is returned
// unless all of them are in range.
func (f *Filter) indices(dst []uint32, item []byte) ([]uint32, error) {
	if err := f.checkItem(item); err != nil {
		return nil, err
	}
	dst = f.family.Indices(dst, item)
	for fn, i := range dst {
		if i >= f.bits.Len() {
			return nil, fmt.Errorf("%w: function %d gave %d, mBits %d", ErrBadIndex, fn, i, f.bits.Len())
		}
	}
	return dst, nil
}

// Insert sets the k bits of item. On error no bit is set.
func (f *Filter) Insert(item []byte) error {
	var buf [MaxK]uint32
	idx, err := f.indices(buf[:0], item)
	if err != nil {
		return err
	}
	for _, i := range idx {
		f.bits.Set(i)
	}
	return nil
}

// MayContain returns false if item was definitely never inserted, and true
// if it probably was.
func (f *Filter) MayContain(item []byte) (bool, error) {
	var buf [MaxK]uint32
	idx, err := f.indices(buf[:0], item)
	if err != nil {
		return false, err
	}
	for _, i := range idx {
		if !f.bits.Test(i) {
			return false, nil
		}
	}
	return true, nil
}

// Merge ORs other into f, so that f answers for the union of both observed
// sets. Filters with different Params are rejected and f is left unchanged.
func (f *Filter) Merge(other *Filter) error {
	if f.Params() != other.Params() {
		return fmt.Errorf("%w: %+v != %+v", ErrParamsMismatch, f.Params(), other.Params())
	}
	return f.bits.MergeOr(other.bits)
}

// Union returns a new filter holding a merged with b. Neither input changes.
func Union(a, b *Filter) (*Filter, error) {
	u := a.Clone()
	if err := u.Merge(b); err != nil {
		return nil, err
	}
	return u, nil
}

func (f *Filter) Clone() *Filter {
	return &Filter{family: f.family, bits: f.bits.Clone()}
}

// Equal reports whether both filters share Params and bit state.
func (f *Filter) Equal(other *Filter) bool {
	return f.Params() == other.Params() && f.bits.Equal(other.bits)
}

func (f *Filter) IsEmpty() bool { return f.bits.IsZero() }

// Count returns the number of set bits.
func (f *Filter) Count() uint32 { return f.bits.Count() }

// EstimatedFalsePositiveRate returns the expected false positive rate had n
// distinct items been inserted.
func (f *Filter) EstimatedFalsePositiveRate(n uint64) float64 {
	p := f.Params()
	return FalsePositiveRate(p.MBits, p.K, n)
}

// Bytes returns the fixed size LSB0 wire form.
func (f *Filter) Bytes() []byte { return f.bits.Bytes() }
