package aglio

import (
	"encoding/binary"

	"github.com/sigurn/crc16"
	"github.com/unkn0wn-root/aglio/internal/byteio"
	"github.com/unkn0wn-root/aglio/internal/frame"
)

// Endianness selects the byte order used for every multi-byte field in a
// frame: integers, floats, the body_length field, length prefixes, and the
// CRC trailer. A single packet never mixes byte orders.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// LengthWidth is the wire width of the length prefix ahead of str, bytes,
// char, sequence, and map payloads. It does not affect the frame's own
// body_length field, which is always a u32 (see internal/frame), nor an
// enum's variant index, which is always one byte.
type LengthWidth int

const (
	LengthU8 LengthWidth = iota
	LengthU16
	LengthU32 // default
	LengthU64
)

func (w LengthWidth) width() byteio.Width {
	switch w {
	case LengthU8:
		return byteio.WidthU8
	case LengthU16:
		return byteio.WidthU16
	case LengthU64:
		return byteio.WidthU64
	default:
		return byteio.WidthU32
	}
}

// CRCAlgorithm selects the optional CRC-16 trailer algorithm.
type CRCAlgorithm int

const (
	// CRCUSB is the current default: poly=0x8005, init=0xFFFF, reflected
	// in/out, xorout=0xFFFF.
	CRCUSB CRCAlgorithm = iota
	// CRCNone disables the trailer entirely.
	CRCNone
	// CRCLegacyCCITT is the historical default of an earlier source
	// revision: poly=0x1021, init=0xFFFF, non-reflected, xorout=0x0000.
	CRCLegacyCCITT
)

func (a CRCAlgorithm) table() *crc16.Table {
	switch a {
	case CRCNone:
		return nil
	case CRCLegacyCCITT:
		return frame.LegacyCCITTTable()
	default:
		return frame.USBTable()
	}
}

// Config carries everything a single Encode/Decode call needs. It is
// immutable for the duration of any call that borrows it and is safe to
// share by reference across concurrently running calls.
//
// The zero Config is NOT ready to use: construct with DefaultConfig and
// override fields. An empty Sentinel is a configuration error, not an
// implicit default.
type Config struct {
	Endian      Endianness
	Sentinel    []byte
	LengthWidth LengthWidth
	CRC         CRCAlgorithm

	// Hooks, if non-nil, receives decode-time diagnostic callbacks. Nil
	// disables all hook invocations; the frame fingerprint passed to hooks
	// is still computed on every decode.
	Hooks Hooks
}

// DefaultConfig returns {LittleEndian, sentinel=0xAA 0x55, LengthU32, CRCUSB}.
func DefaultConfig() Config {
	return Config{
		Endian:      LittleEndian,
		Sentinel:    []byte{0xAA, 0x55},
		LengthWidth: LengthU32,
		CRC:         CRCUSB,
	}
}

func (c Config) order() binary.ByteOrder { return c.Endian.order() }

func (c Config) lengthWidth() byteio.Width { return c.LengthWidth.width() }

func (c Config) crcTable() *crc16.Table { return c.CRC.table() }

func (c Config) hooks() Hooks {
	if c.Hooks == nil {
		return NopHooks{}
	}
	return c.Hooks
}

// validate reports whether the Config is usable; callers wrap the message
// into the appropriate Encode/DecodeError type.
func (c Config) validate() (ok bool, msg string) {
	if len(c.Sentinel) == 0 {
		return false, "Config.Sentinel must be non-empty; use DefaultConfig"
	}
	return true, ""
}
