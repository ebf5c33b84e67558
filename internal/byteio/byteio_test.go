package byteio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriteReadPrimitives(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		w := NewWriter(order, 0)
		w.WriteBool(true)
		w.WriteU8(0xAB)
		w.WriteI8(-2)
		w.WriteU16(0x0102)
		w.WriteI16(-300)
		w.WriteU32(0x01020304)
		w.WriteI32(-70000)
		w.WriteU64(0x0102030405060708)
		w.WriteI64(-1 << 40)
		w.WriteF32(1.5)
		w.WriteF64(-2.25)
		w.WriteU128(0x1111, 0x2222)

		r := NewReader(order, w.Bytes())
		if v, err := r.ReadBool(); err != nil || !v {
			t.Fatalf("bool: %v %v", v, err)
		}
		if v, err := r.ReadU8(); err != nil || v != 0xAB {
			t.Fatalf("u8: %v %v", v, err)
		}
		if v, err := r.ReadI8(); err != nil || v != -2 {
			t.Fatalf("i8: %v %v", v, err)
		}
		if v, err := r.ReadU16(); err != nil || v != 0x0102 {
			t.Fatalf("u16: %v %v", v, err)
		}
		if v, err := r.ReadI16(); err != nil || v != -300 {
			t.Fatalf("i16: %v %v", v, err)
		}
		if v, err := r.ReadU32(); err != nil || v != 0x01020304 {
			t.Fatalf("u32: %v %v", v, err)
		}
		if v, err := r.ReadI32(); err != nil || v != -70000 {
			t.Fatalf("i32: %v %v", v, err)
		}
		if v, err := r.ReadU64(); err != nil || v != 0x0102030405060708 {
			t.Fatalf("u64: %v %v", v, err)
		}
		if v, err := r.ReadI64(); err != nil || v != -1<<40 {
			t.Fatalf("i64: %v %v", v, err)
		}
		if v, err := r.ReadF32(); err != nil || v != 1.5 {
			t.Fatalf("f32: %v %v", v, err)
		}
		if v, err := r.ReadF64(); err != nil || v != -2.25 {
			t.Fatalf("f64: %v %v", v, err)
		}
		hi, lo, err := r.ReadU128()
		if err != nil || hi != 0x1111 || lo != 0x2222 {
			t.Fatalf("u128: %x %x %v", hi, lo, err)
		}
		if r.Remaining() != 0 {
			t.Fatalf("expected empty reader, %d bytes left", r.Remaining())
		}
	}
}

func TestEndiannessBytes(t *testing.T) {
	le := NewWriter(binary.LittleEndian, 0)
	le.WriteU32(0x11223344)
	be := NewWriter(binary.BigEndian, 0)
	be.WriteU32(0x11223344)

	if !bytes.Equal(le.Bytes(), []byte{0x44, 0x33, 0x22, 0x11}) {
		t.Fatalf("LE bytes: %x", le.Bytes())
	}
	if !bytes.Equal(be.Bytes(), []byte{0x11, 0x22, 0x33, 0x44}) {
		t.Fatalf("BE bytes: %x", be.Bytes())
	}
}

func TestU128WordOrder(t *testing.T) {
	le := NewWriter(binary.LittleEndian, 0)
	le.WriteU128(0xAAAA, 0xBBBB)
	// low word first under little-endian.
	lo := binary.LittleEndian.Uint64(le.Bytes()[:8])
	if lo != 0xBBBB {
		t.Fatalf("expected low word first, got %x", lo)
	}

	be := NewWriter(binary.BigEndian, 0)
	be.WriteU128(0xAAAA, 0xBBBB)
	hi := binary.BigEndian.Uint64(be.Bytes()[:8])
	if hi != 0xAAAA {
		t.Fatalf("expected high word first, got %x", hi)
	}
}

func TestReadBoolRejectsOtherBytes(t *testing.T) {
	r := NewReader(binary.LittleEndian, []byte{0x02, 0x00})
	if _, err := r.ReadBool(); err != ErrInvalidData {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
	// the bad byte is still consumed.
	if r.Remaining() != 1 {
		t.Fatalf("expected bad byte consumed, %d remaining", r.Remaining())
	}
}

func TestUnderrun(t *testing.T) {
	r := NewReader(binary.LittleEndian, []byte{0x01, 0x02})
	if _, err := r.ReadU32(); err != ErrInvalidLength {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestLengthWidths(t *testing.T) {
	cases := []struct {
		width Width
		max   int
	}{
		{WidthU8, 0xFF},
		{WidthU16, 0xFFFF},
		{WidthU32, 0xFFFFFFFF},
	}
	for _, tc := range cases {
		w := NewWriter(binary.LittleEndian, 0)
		if err := w.WriteLength(tc.width, tc.max); err != nil {
			t.Fatalf("width %d: max value should fit: %v", tc.width, err)
		}
		r := NewReader(binary.LittleEndian, w.Bytes())
		got, err := r.ReadLength(tc.width)
		if err != nil || got != tc.max {
			t.Fatalf("width %d: got %d err %v", tc.width, got, err)
		}

		w = NewWriter(binary.LittleEndian, 0)
		if tc.width != WidthU32 {
			if err := w.WriteLength(tc.width, tc.max+1); err != ErrTooLong {
				t.Fatalf("width %d: expected ErrTooLong, got %v", tc.width, err)
			}
		}
	}

	w := NewWriter(binary.LittleEndian, 0)
	if err := w.WriteLength(WidthU16, -1); err != ErrTooLong {
		t.Fatalf("negative count: expected ErrTooLong, got %v", err)
	}
}

func TestReadLengthU64Unaddressable(t *testing.T) {
	w := NewWriter(binary.LittleEndian, 0)
	w.WriteU64(1 << 63)
	r := NewReader(binary.LittleEndian, w.Bytes())
	if _, err := r.ReadLength(WidthU64); err != ErrInvalidSize {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestTakeIsZeroCopy(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	r := NewReader(binary.LittleEndian, buf)
	b, err := r.Take(2)
	if err != nil {
		t.Fatal(err)
	}
	buf[0] = 99
	if b[0] != 99 {
		t.Fatal("expected Take to alias the input buffer")
	}
}
