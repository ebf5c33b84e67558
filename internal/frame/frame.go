// Package frame implements the outermost container of the aglio wire
// format: sentinel + body length + body + optional CRC-16 trailer. The
// sentinel and the CRC algorithm are configurable per call rather than
// fixed constants, because aglio serves heterogeneous peers (see Config in
// the root package). Framing is strict: a frame accounts for every byte it
// carries, and trailing bytes are an error.
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/sigurn/crc16"
)

// lengthFieldSize is the width, in bytes, of the body_length field: a u32
// measuring the body's byte length alone, excluding the length field
// itself and excluding any CRC trailer. An earlier revision of this format
// stored a u16 that counted itself; the u32-excluding-itself form needs no
// self-referential arithmetic and is what current peers speak.
const lengthFieldSize = 4

var (
	ErrInvalidPacketStart = errors.New("frame: sentinel missing or mismatched")
	ErrInvalidLength      = errors.New("frame: buffer underrun")
	ErrInvalidData        = errors.New("frame: body_length disagrees with remaining bytes")
	ErrChecksum           = errors.New("frame: CRC mismatch")
)

// Assemble builds a complete frame: sentinel, body_length, body, and
// (if table is non-nil) a CRC-16 trailer computed over
// sentinel || body_length || body.
func Assemble(order binary.ByteOrder, sentinel []byte, body []byte, table *crc16.Table) []byte {
	total := len(sentinel) + lengthFieldSize + len(body)
	if table != nil {
		total += 2
	}
	out := make([]byte, 0, total)
	out = append(out, sentinel...)

	var lenField [lengthFieldSize]byte
	order.PutUint32(lenField[:], uint32(len(body)))
	out = append(out, lenField[:]...)
	out = append(out, body...)

	if table != nil {
		sum := crc16.Checksum(out, table)
		var crcField [2]byte
		order.PutUint16(crcField[:], sum)
		out = append(out, crcField[:]...)
	}
	return out
}

// Parse validates and strips a frame, returning the body. Verification
// runs CRC first (so sentinel corruption is still detectable), then
// sentinel, then the length field, matching the body against what remains.
func Parse(order binary.ByteOrder, sentinel []byte, table *crc16.Table, framed []byte) ([]byte, error) {
	rest := framed
	if table != nil {
		if len(rest) < 2 {
			return nil, ErrInvalidLength
		}
		covered := rest[:len(rest)-2]
		stored := order.Uint16(rest[len(rest)-2:])
		if crc16.Checksum(covered, table) != stored {
			return nil, ErrChecksum
		}
		rest = covered
	}

	if len(rest) < len(sentinel) || !bytes.Equal(rest[:len(sentinel)], sentinel) {
		return nil, ErrInvalidPacketStart
	}
	rest = rest[len(sentinel):]

	if len(rest) < lengthFieldSize {
		return nil, ErrInvalidLength
	}
	bodyLen := order.Uint32(rest[:lengthFieldSize])
	rest = rest[lengthFieldSize:]

	if uint64(bodyLen) != uint64(len(rest)) {
		return nil, ErrInvalidData
	}
	return rest, nil
}
