package frame

import "github.com/sigurn/crc16"

// USBParams are the CRC-16/USB parameters used by default:
// poly=0x8005, init=0xFFFF, reflected in/out, xorout=0xFFFF.
var USBParams = crc16.Params{
	Poly:   0x8005,
	Init:   0xFFFF,
	RefIn:  true,
	RefOut: true,
	XorOut: 0xFFFF,
	Check:  0xB4C8,
	Name:   "CRC-16/USB",
}

// LegacyCCITTParams are the historical default of an earlier revision of
// this codec: poly=0x1021, init=0xFFFF, non-reflected, xorout=0x0000
// (CRC-16/CCITT-FALSE). Kept so peers still running that revision can
// still be talked to.
var LegacyCCITTParams = crc16.Params{
	Poly:   0x1021,
	Init:   0xFFFF,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x0000,
	Check:  0x29B1,
	Name:   "CRC-16/CCITT-FALSE",
}

var (
	usbTable    = crc16.MakeTable(USBParams)
	legacyTable = crc16.MakeTable(LegacyCCITTParams)
)

// USBTable returns the precomputed CRC-16/USB table (the default).
func USBTable() *crc16.Table { return usbTable }

// LegacyCCITTTable returns the precomputed CRC-16/CCITT-FALSE table.
func LegacyCCITTTable() *crc16.Table { return legacyTable }
