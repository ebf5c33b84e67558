package aglio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// noCRC is the default config minus the CRC trailer, so tests can assert
// exact frame bytes without recomputing checksums by hand.
func noCRC() Config {
	cfg := DefaultConfig()
	cfg.CRC = CRCNone
	return cfg
}

// rawFrame builds sentinel + body_length(u32 LE) + body, no CRC.
func rawFrame(body []byte) []byte {
	out := []byte{0xAA, 0x55}
	var lenField [4]byte
	binary.LittleEndian.PutUint32(lenField[:], uint32(len(body)))
	out = append(out, lenField[:]...)
	return append(out, body...)
}

func TestWireLayout(t *testing.T) {
	cases := []struct {
		name string
		in   any
		body []byte
	}{
		{"bool true", true, []byte{0x01}},
		{"u32", uint32(0x11223344), []byte{0x44, 0x33, 0x22, 0x11}},
		{"string OK", "OK", []byte{0x02, 0x00, 0x00, 0x00, 0x4F, 0x4B}},
		{"empty string", "", []byte{0x00, 0x00, 0x00, 0x00}},
		{"option absent", (*uint16)(nil), []byte{0x00}},
		{"option present", struct{ P *uint16 }{ptr(uint16(0x0102))}, []byte{0x01, 0x02, 0x01}},
		{"struct concatenation", struct{ A, B, C uint8 }{1, 2, 3}, []byte{0x01, 0x02, 0x03}},
		{"empty sequence", []uint32{}, []byte{0x00, 0x00, 0x00, 0x00}},
		{"fixed array no prefix", [3]uint8{9, 8, 7}, []byte{0x09, 0x08, 0x07}},
		{"char lambda", Char('λ'), []byte{0x02, 0x00, 0x00, 0x00, 0xCE, 0xBB}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			framed, err := EncodeWith(noCRC(), tc.in)
			if err != nil {
				t.Fatalf("EncodeWith: %v", err)
			}
			want := rawFrame(tc.body)
			if !bytes.Equal(framed, want) {
				t.Fatalf("frame mismatch:\n got %x\nwant %x", framed, want)
			}

			out := reflect.New(reflect.TypeOf(tc.in))
			if err := DecodeWith(noCRC(), framed, out.Interface()); err != nil {
				t.Fatalf("DecodeWith: %v", err)
			}
			if !reflect.DeepEqual(out.Elem().Interface(), tc.in) {
				t.Fatalf("round-trip mismatch: got %#v want %#v", out.Elem().Interface(), tc.in)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

type variantC struct{ P uint8 }

func (variantC) VariantIndex() uint8 { return 2 }

func TestWireLayoutVariant(t *testing.T) {
	framed, err := EncodeVariantWith(noCRC(), variantC{P: 7})
	if err != nil {
		t.Fatal(err)
	}
	want := rawFrame([]byte{0x02, 0x07})
	if !bytes.Equal(framed, want) {
		t.Fatalf("frame mismatch:\n got %x\nwant %x", framed, want)
	}
}

func TestEndianSymmetry(t *testing.T) {
	le, be := noCRC(), noCRC()
	be.Endian = BigEndian

	v := uint64(0x0102030405060708)
	fle, err := EncodeWith(le, v)
	if err != nil {
		t.Fatal(err)
	}
	fbe, err := EncodeWith(be, v)
	if err != nil {
		t.Fatal(err)
	}

	// sentinel(2) + body_length(4), then the 8 value bytes.
	leBody, beBody := fle[6:], fbe[6:]
	for i := range leBody {
		if leBody[i] != beBody[len(beBody)-1-i] {
			t.Fatalf("value bytes are not byte-reverses: %x vs %x", leBody, beBody)
		}
	}
}

func TestOptionOfOption(t *testing.T) {
	inner := uint8(9)
	mid := &inner

	cases := []struct {
		name string
		in   struct{ P **uint8 }
		body []byte
	}{
		{"both present", struct{ P **uint8 }{&mid}, []byte{0x01, 0x01, 0x09}},
		{"outer only", struct{ P **uint8 }{ptr((*uint8)(nil))}, []byte{0x01, 0x00}},
		{"absent", struct{ P **uint8 }{nil}, []byte{0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			framed, err := EncodeWith(noCRC(), tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(framed, rawFrame(tc.body)) {
				t.Fatalf("frame mismatch: got %x", framed)
			}

			var out struct{ P **uint8 }
			if err := DecodeWith(noCRC(), framed, &out); err != nil {
				t.Fatal(err)
			}
			back, err := EncodeWith(noCRC(), out)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(back, framed) {
				t.Fatalf("round-trip not stable: %x vs %x", back, framed)
			}
		})
	}
}

func TestLengthWidthU8Overflow(t *testing.T) {
	cfg := noCRC()
	cfg.LengthWidth = LengthU8

	cases := []struct {
		name string
		in   any
	}{
		{"string of 256 bytes", strings.Repeat("a", 256)},
		{"sequence of 256 elements", make([]uint16, 256)},
		{"bytes of 256", bytes.Repeat([]byte{1}, 256)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeWith(cfg, tc.in)
			if !errors.Is(err, TooLong) {
				t.Fatalf("expected TooLong, got %v", err)
			}
		})
	}

	// 255 still fits.
	if _, err := EncodeWith(cfg, strings.Repeat("a", 255)); err != nil {
		t.Fatalf("255 bytes should fit a u8 length prefix: %v", err)
	}
}

func TestMalformedBodies(t *testing.T) {
	cases := []struct {
		name string
		body []byte
		out  func() any
		want Code
	}{
		{
			"length prefix exceeds remaining buffer",
			[]byte{0x0A, 0x00, 0x00, 0x00, 0x4F, 0x4B},
			func() any { return new(string) },
			InvalidLength,
		},
		{
			"invalid utf-8 in str",
			[]byte{0x01, 0x00, 0x00, 0x00, 0xFF},
			func() any { return new(string) },
			InvalidUTF8,
		},
		{
			"invalid bool discriminator",
			[]byte{0x02},
			func() any { return new(bool) },
			InvalidData,
		},
		{
			"invalid option tag",
			[]byte{0x02, 0x07},
			func() any { return new(struct{ P *uint8 }) },
			InvalidData,
		},
		{
			"empty char payload",
			[]byte{0x00, 0x00, 0x00, 0x00},
			func() any { return new(Char) },
			InvalidLength,
		},
		{
			"truncated primitive",
			[]byte{0x01, 0x02},
			func() any { return new(uint32) },
			InvalidLength,
		},
		{
			"sequence length exceeds remaining buffer",
			[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x01, 0x02},
			func() any { return new([]uint16) },
			InvalidLength,
		},
		{
			"map length exceeds remaining buffer",
			[]byte{0xFF, 0xFF, 0xFF, 0xFF},
			func() any { return new(map[uint8]uint8) },
			InvalidLength,
		},
		{
			"trailing bytes",
			[]byte{0x01, 0x02},
			func() any { return new(uint8) },
			InvalidData,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := DecodeWith(noCRC(), rawFrame(tc.body), tc.out())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	framed, err := EncodeWith(noCRC(), struct {
		S string
		N uint16
	}{"twice", 7})
	if err != nil {
		t.Fatal(err)
	}
	snapshot := append([]byte(nil), framed...)

	for i := 0; i < 2; i++ {
		var out struct {
			S string
			N uint16
		}
		if err := DecodeWith(noCRC(), framed, &out); err != nil {
			t.Fatal(err)
		}
		if out.S != "twice" || out.N != 7 {
			t.Fatalf("pass %d mismatch: %+v", i, out)
		}
	}
	if !bytes.Equal(framed, snapshot) {
		t.Fatal("decode mutated its input")
	}
}

func TestDecodeIntoInterfaceNotDescriptive(t *testing.T) {
	framed, err := EncodeWith(noCRC(), uint8(1))
	if err != nil {
		t.Fatal(err)
	}
	var out any
	err = DecodeWith(noCRC(), framed, &out)
	if !errors.Is(err, NotDescriptive) {
		t.Fatalf("expected NotDescriptive, got %v", err)
	}
}

// blob exercises the Marshaler/Unmarshaler escape hatch, mixing an owned
// string with zero-copy bytes in one payload.
type blob struct {
	Label string
	Data  []byte
}

func (b blob) MarshalAglio(e *Encoder) error {
	if err := e.WriteStr(b.Label); err != nil {
		return err
	}
	return e.WriteBytes(b.Data)
}

func (b *blob) UnmarshalAglio(d *Decoder) error {
	label, err := d.ReadStrOwned()
	if err != nil {
		return err
	}
	data, err := d.ReadBytesBorrowed()
	if err != nil {
		return err
	}
	b.Label = label
	b.Data = data
	return nil
}

func TestMarshalerOverride(t *testing.T) {
	in := blob{Label: "fw", Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}}
	framed, err := EncodeWith(noCRC(), in)
	if err != nil {
		t.Fatal(err)
	}

	var out blob
	if err := DecodeWith(noCRC(), framed, &out); err != nil {
		t.Fatal(err)
	}
	if out.Label != in.Label || !bytes.Equal(out.Data, in.Data) {
		t.Fatalf("mismatch: %+v", out)
	}

	// Borrowed decode aliases the frame's backing array: mutating the frame
	// must show through the decoded slice.
	framed[len(framed)-1] ^= 0xFF
	if out.Data[len(out.Data)-1] == 0xEF {
		t.Fatal("expected borrowed bytes to alias the input buffer")
	}
}
