package codec

import (
	"errors"
	"testing"

	"github.com/unkn0wn-root/aglio"
)

type reading struct {
	Sensor uint16
	Value  float64
	Note   string
}

func TestAglioRoundTrip(t *testing.T) {
	var c Codec[reading] = Aglio[reading]{}

	in := reading{Sensor: 3, Value: 21.5, Note: "ok"}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("mismatch: %+v != %+v", out, in)
	}
}

func TestAglioDetectsCorruption(t *testing.T) {
	c := Aglio[reading]{}
	b, err := c.Encode(reading{Sensor: 1})
	if err != nil {
		t.Fatal(err)
	}
	b[len(b)-1] ^= 0xFF
	if _, err := c.Decode(b); !errors.Is(err, aglio.ChecksumError) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
}

func TestAglioCustomConfig(t *testing.T) {
	cfg := aglio.DefaultConfig()
	cfg.Endian = aglio.BigEndian
	cfg.CRC = aglio.CRCNone
	c := NewAglio[reading](cfg)

	in := reading{Sensor: 9, Note: "be"}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("mismatch: %+v != %+v", out, in)
	}
}
