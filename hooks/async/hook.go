// Package asynchook isolates a potentially slow Hooks implementation from
// the decode path: each callback is pushed onto a bounded queue drained by
// a small worker pool, and dropped rather than blocking the caller once
// that queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ChecksumFailedEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cfg := aglio.DefaultConfig()
//	cfg.Hooks = hooks
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/aglio"
)

type Hooks struct {
	inner aglio.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ aglio.Hooks = (*Hooks)(nil)

func New(inner aglio.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ChecksumFailed(fp string)   { h.try(func() { h.inner.ChecksumFailed(fp) }) }
func (h *Hooks) SentinelMismatch(fp string) { h.try(func() { h.inner.SentinelMismatch(fp) }) }
func (h *Hooks) Truncated(fp, path string)  { h.try(func() { h.inner.Truncated(fp, path) }) }
func (h *Hooks) InvalidVariant(fp string, index uint8, tableSize int) {
	h.try(func() { h.inner.InvalidVariant(fp, index, tableSize) })
}
func (h *Hooks) DedupeHit(fp string) { h.try(func() { h.inner.DedupeHit(fp) }) }
func (h *Hooks) EpochAdvanced(link string, newEpoch uint64) {
	h.try(func() { h.inner.EpochAdvanced(link, newEpoch) })
}
