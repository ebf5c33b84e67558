package aglio

// Char is a Unicode scalar value. It is a defined type over rune so the
// reflection dispatcher can distinguish a char (length-prefixed UTF-8 on
// the wire) from a plain 32-bit integer, which int32/rune would otherwise
// be indistinguishable from.
type Char rune

// Uint128 is an unsigned 128-bit integer, represented as two 64-bit halves
// because Go has no native 128-bit integer kind. Wire form: two u64 writes
// whose order follows the configured endianness (low word first for
// little-endian, high word first for big-endian), so the 16-byte payload
// reads as a single integer of that width and order.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Int128 is a signed 128-bit integer using the same two's-complement split
// as Uint128; Hi carries the sign.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Marshaler lets a type take over its own encoding instead of being driven
// by reflection, in the manner of encoding/json.Marshaler.
type Marshaler interface {
	MarshalAglio(e *Encoder) error
}

// Unmarshaler is Marshaler's decode-side counterpart.
type Unmarshaler interface {
	UnmarshalAglio(d *Decoder) error
}

// Variant is implemented by enum payload types so Encoder can write the
// one-byte variant index ahead of the payload's own encoding. Variants are
// dispatched only at the top level of a frame (EncodeVariant/DecodeVariant);
// a variant nested inside another value must run its own VariantTable
// dispatch from a Marshaler/Unmarshaler implementation.
type Variant interface {
	VariantIndex() uint8
}

// VariantSpec describes one arm of an enum for decode-side dispatch.
type VariantSpec struct {
	// Name is used only for diagnostics; the wire carries the index alone.
	Name string
	// New returns a fresh, addressable zero value of the variant's payload
	// type. Its fields (or its own Unmarshaler, if it implements one) are
	// then populated exactly as a struct/newtype/tuple would be.
	New func() Variant
}

// VariantTable is the caller-provided variant list that drives enum
// decoding: decode reads a one-byte index and looks up the matching entry,
// failing InvalidData if the index is at or past the table's end.
type VariantTable []VariantSpec
