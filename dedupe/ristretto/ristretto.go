package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/aglio/dedupe"
)

// Ristretto tracks seen frame fingerprints in an admission-controlled,
// size-bounded in-process cache. Admission control may drop a Mark under
// pressure; callers needing a hard guarantee should use Redis or Local.
type Ristretto struct {
	c *rc.Cache
}

var _ dedupe.Store = (*Ristretto)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Ristretto, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("dedupe/ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{c: c}, nil
}

func (p *Ristretto) Seen(_ context.Context, fingerprint string) (bool, error) {
	_, ok := p.c.Get(fingerprint)
	return ok, nil
}

func (p *Ristretto) Mark(_ context.Context, fingerprint string, ttl time.Duration) error {
	p.c.SetWithTTL(fingerprint, []byte{1}, 1, ttl)
	return nil
}

func (p *Ristretto) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}
