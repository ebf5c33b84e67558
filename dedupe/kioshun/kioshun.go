package kioshun

import (
	"context"
	"time"

	kc "github.com/unkn0wn-root/kioshun"

	"github.com/unkn0wn-root/aglio/dedupe"
)

// Kioshun tracks seen frame fingerprints in a sharded in-memory cache,
// keyed by the fingerprint string with a one-byte presence marker as the
// value. Under an admission policy the cache may refuse an entry, in which
// case a later Seen reports false.
type Kioshun struct {
	c *kc.InMemoryCache[string, []byte]
}

var _ dedupe.Store = (*Kioshun)(nil)

type Config struct {
	MaxItems               int64
	ShardCount             int
	Policy                 kc.EvictionPolicy
	CleanupInterval        time.Duration
	AdmissionResetInterval time.Duration
	StatsEnabled           bool
}

func New(cfg Config) *Kioshun {
	kcfg := kc.Config{
		MaxSize:                cfg.MaxItems,
		ShardCount:             cfg.ShardCount,
		CleanupInterval:        cfg.CleanupInterval,
		DefaultTTL:             0,
		EvictionPolicy:         cfg.Policy,
		StatsEnabled:           cfg.StatsEnabled,
		AdmissionResetInterval: cfg.AdmissionResetInterval,
	}
	return &Kioshun{c: kc.New[string, []byte](kcfg)}
}

func (p *Kioshun) Seen(_ context.Context, fingerprint string) (bool, error) {
	_, ok := p.c.Get(fingerprint)
	return ok, nil
}

func (p *Kioshun) Mark(_ context.Context, fingerprint string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = kc.NoExpiration
	}
	return p.c.Set(fingerprint, []byte{1}, ttl)
}

func (p *Kioshun) Close(_ context.Context) error { return p.c.Close() }
