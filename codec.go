package aglio

import (
	"reflect"

	"github.com/unkn0wn-root/aglio/internal/byteio"
	"github.com/unkn0wn-root/aglio/internal/fingerprint"
	"github.com/unkn0wn-root/aglio/internal/frame"
)

// Encode frames v using DefaultConfig.
func Encode(v any) ([]byte, error) {
	return EncodeWith(DefaultConfig(), v)
}

// EncodeWith frames v under cfg: sentinel, body_length, the structural
// encoding of v, and (if cfg.CRC != CRCNone) a CRC-16 trailer.
//
// v is encoded via its Marshaler implementation if it has one, otherwise by
// reflection (reflect.go) over its Go structural kind. A non-nil pointer
// passed directly (not nested inside another value) is dereferenced rather
// than treated as option<T>; a nil one encodes as an absent option<T> (a
// single 0x00 byte). Nested pointer fields always encode as option<T>.
func EncodeWith(cfg Config, v any) ([]byte, error) {
	if ok, msg := cfg.validate(); !ok {
		return nil, encErr(InvalidData, "", msg, nil)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}

	w := byteio.NewWriter(cfg.order(), 64)
	e := newEncoder(w, cfg.lengthWidth())
	if err := encodeValue(e, rv); err != nil {
		return nil, err
	}

	return frame.Assemble(cfg.order(), cfg.Sentinel, w.Bytes(), cfg.crcTable()), nil
}

// Decode parses framed using DefaultConfig and decodes its body into out,
// which must be a non-nil pointer.
func Decode(framed []byte, out any) error {
	return DecodeWith(DefaultConfig(), framed, out)
}

// DecodeWith validates framed's sentinel, CRC (if configured), and
// body_length against cfg, then decodes the body into out. A sentinel,
// CRC, or truncation failure invokes the matching Hooks callback before
// returning, using a fingerprint of the raw input so a caller's hook can
// correlate failures without decoding succeeding first. Failures with no
// matching callback (a body_length mismatch, a bad discriminator byte,
// invalid UTF-8, trailing bytes) fire no hook.
//
// Framing is strict: trailing bytes left in the body after out has been
// fully decoded are an InvalidData error.
func DecodeWith(cfg Config, framed []byte, out any) error {
	if ok, msg := cfg.validate(); !ok {
		return decErr(InvalidData, "", msg, nil)
	}

	fp := fingerprint.Frame(framed)
	hooks := cfg.hooks()

	body, err := frame.Parse(cfg.order(), cfg.Sentinel, cfg.crcTable(), framed)
	if err != nil {
		return wrapFrameErr(err, hooks, fp)
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return decErr(Custom, "", "decode destination must be a non-nil pointer", nil)
	}

	r := byteio.NewReader(cfg.order(), body)
	d := newDecoder(r, cfg.lengthWidth(), hooks, fp)
	if err := decodeValue(d, rv.Elem()); err != nil {
		return err
	}
	if d.r.Remaining() != 0 {
		return decErr(InvalidData, d.pathString(), "trailing bytes after decode", nil)
	}
	return nil
}

// EncodeVariant frames an enum payload v, writing its one-byte
// VariantIndex ahead of v's own structural encoding.
func EncodeVariant(v Variant) ([]byte, error) {
	return EncodeVariantWith(DefaultConfig(), v)
}

func EncodeVariantWith(cfg Config, v Variant) ([]byte, error) {
	if ok, msg := cfg.validate(); !ok {
		return nil, encErr(InvalidData, "", msg, nil)
	}

	w := byteio.NewWriter(cfg.order(), 64)
	e := newEncoder(w, cfg.lengthWidth())
	if err := e.WriteVariantIndex(v.VariantIndex()); err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if err := encodeValue(e, rv); err != nil {
		return nil, err
	}

	return frame.Assemble(cfg.order(), cfg.Sentinel, w.Bytes(), cfg.crcTable()), nil
}

// DecodeVariant parses framed, reads its variant index against table, and
// decodes the matching payload. Each VariantSpec.New in table must return a
// pointer so its fields are addressable for decodeValue.
func DecodeVariant(framed []byte, table VariantTable) (Variant, error) {
	return DecodeVariantWith(DefaultConfig(), framed, table)
}

func DecodeVariantWith(cfg Config, framed []byte, table VariantTable) (Variant, error) {
	if ok, msg := cfg.validate(); !ok {
		return nil, decErr(InvalidData, "", msg, nil)
	}

	fp := fingerprint.Frame(framed)
	hooks := cfg.hooks()

	body, err := frame.Parse(cfg.order(), cfg.Sentinel, cfg.crcTable(), framed)
	if err != nil {
		return nil, wrapFrameErr(err, hooks, fp)
	}

	r := byteio.NewReader(cfg.order(), body)
	d := newDecoder(r, cfg.lengthWidth(), hooks, fp)

	spec, err := d.ReadVariantIndex(table)
	if err != nil {
		return nil, err
	}

	payload := spec.New()
	rv := reflect.ValueOf(payload)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, decErr(Custom, "", "VariantSpec.New must return a non-nil pointer", nil)
	}
	if err := decodeValue(d, rv.Elem()); err != nil {
		return nil, err
	}
	if d.r.Remaining() != 0 {
		return nil, decErr(InvalidData, d.pathString(), "trailing bytes after decode", nil)
	}
	return payload, nil
}

func wrapFrameErr(err error, hooks Hooks, fp string) error {
	switch err {
	case frame.ErrInvalidPacketStart:
		hooks.SentinelMismatch(fp)
		return decErr(InvalidPacketStart, "", err.Error(), err)
	case frame.ErrChecksum:
		hooks.ChecksumFailed(fp)
		return decErr(ChecksumError, "", err.Error(), err)
	case frame.ErrInvalidLength:
		hooks.Truncated(fp, "")
		return decErr(InvalidLength, "", err.Error(), err)
	default:
		return decErr(InvalidData, "", err.Error(), err)
	}
}
