package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/aglio/dedupe"
)

// BigCache tracks seen frame fingerprints with a global LifeWindow. The
// underlying cache has no per-entry expiry, so the per-Mark ttl argument
// is ignored.
type BigCache struct {
	c *bc.BigCache
}

var _ dedupe.Store = (*BigCache)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int
}

func New(cfg Config) (*BigCache, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &BigCache{c: c}, nil
}

func (p *BigCache) Seen(_ context.Context, fingerprint string) (bool, error) {
	_, err := p.c.Get(fingerprint)
	if err == bc.ErrEntryNotFound {
		return false, nil
	}
	return err == nil, err
}

func (p *BigCache) Mark(_ context.Context, fingerprint string, _ time.Duration) error {
	return p.c.Set(fingerprint, []byte{1})
}

func (p *BigCache) Close(_ context.Context) error { return p.c.Close() }
