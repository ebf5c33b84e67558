package aglio

import (
	"unicode/utf8"
	"unsafe"

	"github.com/unkn0wn-root/aglio/internal/byteio"
)

// Decoder mirrors Encoder, one Read method per structural kind. A fingerprint
// string (see internal/fingerprint) accompanies every Decoder so Hooks
// callbacks can identify which frame a failure belongs to without the
// caller threading it through every call site.
type Decoder struct {
	r           *byteio.Reader
	lengthWidth byteio.Width
	hooks       Hooks
	fingerprint string
	path        []string
}

func newDecoder(r *byteio.Reader, lengthWidth byteio.Width, hooks Hooks, fingerprint string) *Decoder {
	return &Decoder{r: r, lengthWidth: lengthWidth, hooks: hooks, fingerprint: fingerprint}
}

func (d *Decoder) pushPath(seg string) { d.path = append(d.path, seg) }
func (d *Decoder) popPath()            { d.path = d.path[:len(d.path)-1] }

func (d *Decoder) pathString() string {
	s := ""
	for i, seg := range d.path {
		if i > 0 && seg[0] != '[' {
			s += "."
		}
		s += seg
	}
	return s
}

func (d *Decoder) fail(code Code, detail string) error {
	if code == InvalidLength {
		d.hooks.Truncated(d.fingerprint, d.pathString())
	}
	return decErr(code, d.pathString(), detail, nil)
}

func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.r.ReadBool()
	if err != nil {
		return false, d.wrap(err)
	}
	return v, nil
}

func (d *Decoder) ReadU8() (uint8, error)   { v, err := d.r.ReadU8(); return wrap1(d, v, err) }
func (d *Decoder) ReadI8() (int8, error)    { v, err := d.r.ReadI8(); return wrap1(d, v, err) }
func (d *Decoder) ReadU16() (uint16, error) { v, err := d.r.ReadU16(); return wrap1(d, v, err) }
func (d *Decoder) ReadI16() (int16, error)  { v, err := d.r.ReadI16(); return wrap1(d, v, err) }
func (d *Decoder) ReadU32() (uint32, error) { v, err := d.r.ReadU32(); return wrap1(d, v, err) }
func (d *Decoder) ReadI32() (int32, error)  { v, err := d.r.ReadI32(); return wrap1(d, v, err) }
func (d *Decoder) ReadU64() (uint64, error) { v, err := d.r.ReadU64(); return wrap1(d, v, err) }
func (d *Decoder) ReadI64() (int64, error)  { v, err := d.r.ReadI64(); return wrap1(d, v, err) }

func (d *Decoder) ReadF32() (float32, error) { v, err := d.r.ReadF32(); return wrap1(d, v, err) }
func (d *Decoder) ReadF64() (float64, error) { v, err := d.r.ReadF64(); return wrap1(d, v, err) }

func (d *Decoder) ReadU128() (Uint128, error) {
	hi, lo, err := d.r.ReadU128()
	if err != nil {
		return Uint128{}, d.wrap(err)
	}
	return Uint128{Hi: hi, Lo: lo}, nil
}

func (d *Decoder) ReadI128() (Int128, error) {
	hi, lo, err := d.r.ReadU128()
	if err != nil {
		return Int128{}, d.wrap(err)
	}
	return Int128{Hi: int64(hi), Lo: lo}, nil
}

// ReadChar decodes a length-prefixed UTF-8 scalar value.
func (d *Decoder) ReadChar() (Char, error) {
	b, err := d.readLengthPrefixed()
	if err != nil {
		return 0, err
	}
	if len(b) == 0 {
		return 0, d.fail(InvalidLength, "empty char payload")
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError && n <= 1 {
		return 0, d.fail(InvalidUTF8, "malformed char payload")
	}
	if n != len(b) {
		return 0, d.fail(InvalidUTF8, "char payload is not exactly one scalar value")
	}
	return Char(r), nil
}

// ReadStrBorrowed returns a string that aliases the input buffer's backing
// array via unsafe.String, with no copy. Valid only as long as the decoded
// []byte passed to Decode/DecodeWith is not mutated or discarded.
func (d *Decoder) ReadStrBorrowed() (string, error) {
	b, err := d.readLengthPrefixed()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", d.fail(InvalidUTF8, "str payload is not valid UTF-8")
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// ReadStrOwned behaves like ReadStrBorrowed but copies the bytes, safe to
// retain independently of the input buffer's lifetime.
func (d *Decoder) ReadStrOwned() (string, error) {
	b, err := d.readLengthPrefixed()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", d.fail(InvalidUTF8, "str payload is not valid UTF-8")
	}
	return string(b), nil
}

// ReadBytesBorrowed returns a zero-copy subslice of the input buffer.
func (d *Decoder) ReadBytesBorrowed() ([]byte, error) {
	return d.readLengthPrefixed()
}

// ReadBytesOwned copies the payload into a freshly allocated slice.
func (d *Decoder) ReadBytesOwned() ([]byte, error) {
	b, err := d.readLengthPrefixed()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (d *Decoder) readLengthPrefixed() ([]byte, error) {
	n, err := d.r.ReadLength(d.lengthWidth)
	if err != nil {
		return nil, d.wrap(err)
	}
	b, err := d.r.Take(n)
	if err != nil {
		return nil, d.wrap(err)
	}
	return b, nil
}

// ReadUnit consumes nothing; it exists so generated dispatch code can treat
// unit uniformly with every other structural kind.
func (d *Decoder) ReadUnit() error { return nil }

// ReadOption reads the one-byte presence tag and, if present, invokes
// decode to consume the payload.
func (d *Decoder) ReadOption(decode func(*Decoder) error) error {
	present, err := d.r.ReadBool()
	if err != nil {
		return d.wrap(err)
	}
	if !present {
		return nil
	}
	return decode(d)
}

// ReadSeqHeader reads a sequence's element count.
func (d *Decoder) ReadSeqHeader() (int, error) {
	n, err := d.r.ReadLength(d.lengthWidth)
	if err != nil {
		return 0, d.wrap(err)
	}
	return n, nil
}

// ReadMapHeader reads a map's entry count.
func (d *Decoder) ReadMapHeader() (int, error) {
	n, err := d.r.ReadLength(d.lengthWidth)
	if err != nil {
		return 0, d.wrap(err)
	}
	return n, nil
}

// ReadVariantIndex reads an enum's one-byte discriminator and looks it up
// in table, firing Hooks.InvalidVariant and returning InvalidData if the
// index has no matching entry.
func (d *Decoder) ReadVariantIndex(table VariantTable) (VariantSpec, error) {
	idx, err := d.r.ReadU8()
	if err != nil {
		return VariantSpec{}, d.wrap(err)
	}
	if int(idx) >= len(table) {
		d.hooks.InvalidVariant(d.fingerprint, idx, len(table))
		return VariantSpec{}, d.fail(InvalidData, "variant index out of range")
	}
	return table[idx], nil
}

func (d *Decoder) wrap(err error) error {
	switch err {
	case byteio.ErrInvalidLength:
		return d.fail(InvalidLength, "unexpected end of input")
	case byteio.ErrInvalidData:
		return d.fail(InvalidData, "invalid discriminator byte")
	case byteio.ErrInvalidSize:
		return d.fail(InvalidSize, "length exceeds addressable range")
	case byteio.ErrTooLong:
		return d.fail(TooLong, "length exceeds configured width")
	default:
		return d.fail(InvalidData, err.Error())
	}
}

func wrap1[T any](d *Decoder, v T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, d.wrap(err)
	}
	return v, nil
}
