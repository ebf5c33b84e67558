// Package dedupe recognizes a frame that has already been processed, so a
// caller decoding off an unreliable or replaying transport can discard
// duplicates. It knows nothing about aglio's wire format; callers key it by
// internal/fingerprint's digest of the raw framed bytes. No Store calls
// Hooks.DedupeHit in the root package; a caller that finds a frame already
// seen reports it there itself. A replay filter only needs presence within a TTL window,
// not value storage, so the Store contract is Seen/Mark rather than
// Get/Set.
package dedupe

import (
	"context"
	"time"
)

// Store tracks which frame fingerprints have already been seen.
type Store interface {
	// Seen reports whether fingerprint was already marked.
	Seen(ctx context.Context, fingerprint string) (bool, error)
	// Mark records fingerprint as seen for at least ttl (0 means indefinitely,
	// subject to the backend's own eviction policy).
	Mark(ctx context.Context, fingerprint string, ttl time.Duration) error
	Close(ctx context.Context) error
}
