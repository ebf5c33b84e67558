package codec

import "github.com/unkn0wn-root/aglio"

// Aglio is a Codec that frames values with the root package's
// sentinel/length/CRC wire format instead of a bare serialization, so a
// cache or transport built against Codec[V] can opt into aglio's
// corruption detection without changing call sites. The zero
// value uses aglio.DefaultConfig(); construct with NewAglio to override it.
type Aglio[V any] struct {
	cfg aglio.Config
}

var _ Codec[struct{}] = Aglio[struct{}]{}

func NewAglio[V any](cfg aglio.Config) Aglio[V] { return Aglio[V]{cfg: cfg} }

func (c Aglio[V]) Encode(v V) ([]byte, error) {
	return aglio.EncodeWith(c.config(), v)
}

func (c Aglio[V]) Decode(b []byte) (V, error) {
	var v V
	err := aglio.DecodeWith(c.config(), b, &v)
	return v, err
}

func (c Aglio[V]) config() aglio.Config {
	if len(c.cfg.Sentinel) == 0 {
		return aglio.DefaultConfig()
	}
	return c.cfg
}
