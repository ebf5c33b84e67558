// Package epoch tracks a monotonically increasing counter per link, letting
// a decoder recognize a peer that has reset or reconnected. A "link" here is
// whatever the caller treats as one conversation with one counterpart (a
// serial device address, a socket's remote identity, a topic name); aglio
// itself has no notion of connections, so it is named by a plain string.
// A missing link is epoch 0, and Advance is an atomic
// increment-and-return.
package epoch

import (
	"context"
	"time"
)

// Store abstracts where epoch counters live. Use Local (default) for
// in-process tracking, or Redis for epochs shared across processes.
type Store interface {
	// Current returns link's epoch; an unseen link is epoch 0.
	Current(ctx context.Context, link string) (uint64, error)
	// CurrentMany returns epochs for many links in one round-trip; missing
	// links map to 0.
	CurrentMany(ctx context.Context, links []string) (map[string]uint64, error)
	// Advance atomically increments and returns link's new epoch. Call this
	// when a frame's own header signals a reset (a sequence number going
	// backwards, a reboot flag) — aglio's Decode never calls it itself.
	Advance(ctx context.Context, link string) (uint64, error)
	// Cleanup prunes stale metadata where applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	Close(ctx context.Context) error
}
