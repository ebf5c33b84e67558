// Package fingerprint computes a short, stable identifier for a frame so a
// replay-protection cache (see the dedupe package) can recognize a frame
// it has already processed. The input is length-prefixed before hashing so
// the digest commits to the frame's exact extent, not just its content.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
)

// Frame returns a 16-hex-character fingerprint of a raw framed packet
// (sentinel + body_length + body + optional CRC, exactly as it arrived off
// the wire). Two distinct frames collide only as likely as a 64-bit SHA-256
// prefix collision.
func Frame(framed []byte) string {
	buf := make([]byte, 4+len(framed))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(framed)))
	copy(buf[4:], framed)

	sum := sha256.Sum256(buf)
	return hex16(sum[:])
}

func hex16(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 0; i < 8; i++ {
		v := b[i]
		out[i*2] = hexdigits[v>>4]
		out[i*2+1] = hexdigits[v&0x0f]
	}
	return string(out)
}
