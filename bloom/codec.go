package bloom

import (
	"github.com/fxamacker/cbor/v2"
)

// MarshalBinary implements encoding.BinaryMarshaler. The output is exactly
// Bytes().
func (f *Filter) MarshalBinary() ([]byte, error) {
	return f.Bytes(), nil
}

// UnmarshalBinary replaces the bit state of f. f must have been created with
// New or Decode so that its family is known; the wire form does not carry
// parameters.
func (f *Filter) UnmarshalBinary(data []byte) error {
	if f.family == nil {
		return ErrNotInitialized
	}
	bits, err := BitStoreFromBytes(f.family.MBits(), data)
	if err != nil {
		return err
	}
	f.bits = bits
	return nil
}

// MarshalCBOR encodes the wire form as a CBOR byte string so a filter can be
// embedded directly in CBOR encoded announcements.
func (f *Filter) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(f.Bytes())
}

// UnmarshalCBOR is the inverse of MarshalCBOR. As with UnmarshalBinary the
// family must already be bound.
func (f *Filter) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	return f.UnmarshalBinary(raw)
}
