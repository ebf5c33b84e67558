package aglio

import (
	"strconv"
	"unicode/utf8"

	"github.com/unkn0wn-root/aglio/internal/byteio"
)

// Encoder exposes one method per structural kind. A Marshaler
// implementation drives an Encoder directly; the reflection dispatcher in
// reflect.go is just the default caller of the same methods.
type Encoder struct {
	w           *byteio.Writer
	lengthWidth byteio.Width
	path        []string
}

func newEncoder(w *byteio.Writer, lengthWidth byteio.Width) *Encoder {
	return &Encoder{w: w, lengthWidth: lengthWidth}
}

func (e *Encoder) pushPath(seg string) { e.path = append(e.path, seg) }
func (e *Encoder) popPath()            { e.path = e.path[:len(e.path)-1] }

func (e *Encoder) pathString() string {
	s := ""
	for i, seg := range e.path {
		if i > 0 && seg[0] != '[' {
			s += "."
		}
		s += seg
	}
	return s
}

func (e *Encoder) fail(code Code, detail string) error {
	return encErr(code, e.pathString(), detail, nil)
}

func (e *Encoder) WriteBool(v bool) error { e.w.WriteBool(v); return nil }

func (e *Encoder) WriteU8(v uint8) error   { e.w.WriteU8(v); return nil }
func (e *Encoder) WriteI8(v int8) error    { e.w.WriteI8(v); return nil }
func (e *Encoder) WriteU16(v uint16) error { e.w.WriteU16(v); return nil }
func (e *Encoder) WriteI16(v int16) error  { e.w.WriteI16(v); return nil }
func (e *Encoder) WriteU32(v uint32) error { e.w.WriteU32(v); return nil }
func (e *Encoder) WriteI32(v int32) error  { e.w.WriteI32(v); return nil }
func (e *Encoder) WriteU64(v uint64) error { e.w.WriteU64(v); return nil }
func (e *Encoder) WriteI64(v int64) error  { e.w.WriteI64(v); return nil }

func (e *Encoder) WriteF32(v float32) error { e.w.WriteF32(v); return nil }
func (e *Encoder) WriteF64(v float64) error { e.w.WriteF64(v); return nil }

func (e *Encoder) WriteU128(v Uint128) error { e.w.WriteU128(v.Hi, v.Lo); return nil }
func (e *Encoder) WriteI128(v Int128) error {
	e.w.WriteU128(uint64(v.Hi), v.Lo)
	return nil
}

// WriteChar writes a single Unicode scalar value as its length-prefixed
// UTF-8 encoding (1-4 bytes).
func (e *Encoder) WriteChar(c Char) error {
	if !utf8.ValidRune(rune(c)) {
		return e.fail(InvalidUTF8, "invalid rune "+strconv.Itoa(int(c)))
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], rune(c))
	return e.writeLengthPrefixed(buf[:n])
}

// WriteStr writes a length-prefixed UTF-8 string.
func (e *Encoder) WriteStr(s string) error {
	return e.writeLengthPrefixed([]byte(s))
}

// WriteBytes writes a length-prefixed opaque byte string.
func (e *Encoder) WriteBytes(b []byte) error {
	return e.writeLengthPrefixed(b)
}

func (e *Encoder) writeLengthPrefixed(b []byte) error {
	if err := e.w.WriteLength(e.lengthWidth, len(b)); err != nil {
		return e.fail(TooLong, "length prefix overflows configured width")
	}
	e.w.WriteRaw(b)
	return nil
}

// WriteUnit writes nothing; unit occupies zero bytes on the wire.
func (e *Encoder) WriteUnit() error { return nil }

// WriteOption writes the one-byte presence tag (0x00 absent, 0x01
// present), invoking encode only when present.
func (e *Encoder) WriteOption(present bool, encode func(*Encoder) error) error {
	if !present {
		e.w.WriteBool(false)
		return nil
	}
	e.w.WriteBool(true)
	return encode(e)
}

// WriteSeqHeader writes a sequence's element count ahead of its elements;
// the caller encodes each element with a subsequent call.
func (e *Encoder) WriteSeqHeader(count int) error {
	if err := e.w.WriteLength(e.lengthWidth, count); err != nil {
		return e.fail(TooLong, "sequence length overflows configured width")
	}
	return nil
}

// WriteMapHeader writes a map's entry count ahead of its (key, value)
// pairs; the caller encodes each pair with subsequent calls, key before
// value, in whatever order it chooses (see reflect.go for the sorted-key
// iteration the reflection dispatcher itself uses to stay deterministic).
func (e *Encoder) WriteMapHeader(count int) error {
	if err := e.w.WriteLength(e.lengthWidth, count); err != nil {
		return e.fail(TooLong, "map length overflows configured width")
	}
	return nil
}

// WriteVariantIndex writes an enum's one-byte variant discriminator. The
// caller writes the variant's payload with subsequent calls.
func (e *Encoder) WriteVariantIndex(idx uint8) error {
	e.w.WriteU8(idx)
	return nil
}
