package codec

import "github.com/unkn0wn-root/aglio"

// Framed wraps another Codec so its serialized bytes travel inside an
// aglio frame: sentinel, body length, and CRC trailer protect the inner
// encoding without that backend knowing anything about framing. Decode
// validates the frame first and hands only verified bytes to the inner
// codec, so a corrupted packet is rejected before the inner Decode runs.
//
// The zero value is NOT ready to use; construct with NewFramed. Pass
// aglio.DefaultConfig() for the standard wire settings.
type Framed[V any] struct {
	inner Codec[V]
	cfg   aglio.Config
}

var _ Codec[struct{}] = Framed[struct{}]{}

func NewFramed[V any](inner Codec[V], cfg aglio.Config) Framed[V] {
	return Framed[V]{inner: inner, cfg: cfg}
}

func (c Framed[V]) Encode(v V) ([]byte, error) {
	raw, err := c.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return aglio.EncodeWith(c.cfg, raw)
}

func (c Framed[V]) Decode(b []byte) (V, error) {
	var raw []byte
	if err := aglio.DecodeWith(c.cfg, b, &raw); err != nil {
		var zero V
		return zero, err
	}
	return c.inner.Decode(raw)
}
