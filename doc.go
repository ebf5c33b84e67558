// Package aglio implements a length-delimited, CRC-protected binary framing
// codec with a structural, type-directed serializer/decoder, intended for
// bulk byte links such as USB bulk endpoints or serial connections.
//
// Components:
//   - Config: endianness, sentinel, length-prefix width, CRC algorithm.
//   - Encoder/Decoder: one method per structural kind (bool, integers,
//     floats, char, str, bytes, option, sequence, map, struct, enum).
//   - Marshaler/Unmarshaler: a type may implement these to take over its
//     own wire form; otherwise reflection drives an ordinary Go value
//     (struct fields in declaration order, slices as sequences, maps as
//     map<K,V>, pointers as option<T>, arrays as fixed tuples).
//
// Wire layout (default Config):
//
//	sentinel(2) | body_length(u32 LE) | body(N) | crc16(2, LE)
//
// Encode/Decode are pure, synchronous, and hold no state across calls; a
// single Config may be shared by any number of concurrent calls.
package aglio
