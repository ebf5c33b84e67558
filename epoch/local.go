package epoch

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	Epoch     uint64
	UpdatedAt time.Time
}

// Local keeps epochs in-process (no network I/O). Optionally starts a
// background cleanup goroutine that periodically prunes links that haven't
// advanced for at least `retention` duration.
//
//   - Reads take a shared RLock (Current, CurrentMany).
//   - Advances take an exclusive Lock and are O(1).
//
// Ctx parameters are accepted to satisfy Store but are ignored; all
// operations are local and non-blocking.
type Local struct {
	mu     sync.RWMutex
	epochs map[string]localEntry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup

	retention time.Duration
}

var _ Store = (*Local)(nil)

// NewLocal constructs a Local store. If both cleanupInterval > 0 and
// retention > 0, a background goroutine calls Cleanup(retention) every
// cleanupInterval.
func NewLocal(cleanupInterval, retention time.Duration) *Local {
	s := &Local{
		epochs:    make(map[string]localEntry),
		retention: retention,
	}
	if cleanupInterval > 0 && retention > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup(retention)
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Local) Current(_ context.Context, link string) (uint64, error) {
	s.mu.RLock()
	e, ok := s.epochs[link]
	s.mu.RUnlock()
	if !ok {
		return 0, nil
	}
	return e.Epoch, nil
}

func (s *Local) CurrentMany(_ context.Context, links []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(links))
	s.mu.RLock()
	for _, link := range links {
		out[link] = s.epochs[link].Epoch
	}
	s.mu.RUnlock()
	return out, nil
}

func (s *Local) Advance(_ context.Context, link string) (uint64, error) {
	now := time.Now()
	s.mu.Lock()
	e := s.epochs[link]
	e.Epoch++
	e.UpdatedAt = now
	s.epochs[link] = e
	s.mu.Unlock()
	return e.Epoch, nil
}

func (s *Local) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	for link, e := range s.epochs {
		if !e.UpdatedAt.IsZero() && e.UpdatedAt.Before(cutoff) {
			delete(s.epochs, link)
		}
	}
	s.mu.Unlock()
}

func (s *Local) Close(_ context.Context) error {
	s.mu.Lock()
	stopCh := s.stopCh
	ticker := s.ticker
	s.stopCh, s.ticker = nil, nil
	s.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		if ticker != nil {
			ticker.Stop()
		}
		s.wg.Wait()
	}
	return nil
}
