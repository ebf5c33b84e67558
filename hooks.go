package aglio

// Hooks are lightweight callbacks for high-signal decode-time events.
// Implementations MUST be cheap and non-blocking; do not perform I/O on the
// calling goroutine. If work may block, buffer it and drop on backpressure
// (see hooks/async for a ready-made queue). Config invokes Hooks
// synchronously within the same Decode call — never from a goroutine aglio
// starts itself — so a blocking hook stalls that call, not the codec.
type Hooks interface {
	// ChecksumFailed fires when a frame's CRC trailer didn't match.
	ChecksumFailed(fingerprint string)
	// SentinelMismatch fires when a frame's sentinel prefix was missing or wrong.
	SentinelMismatch(fingerprint string)
	// Truncated fires when the input ended before a required field.
	Truncated(fingerprint, path string)
	// InvalidVariant fires when an enum's variant index had no matching entry
	// in the caller-supplied VariantTable.
	InvalidVariant(fingerprint string, index uint8, tableSize int)
	// DedupeHit reports a frame that a dedupe.Store recognized as already
	// processed. Neither Decode nor the dedupe backends call it; the caller
	// that consults the Store does.
	DedupeHit(fingerprint string)
	// EpochAdvanced reports that an epoch.Store's link epoch was bumped.
	// Neither Decode nor the epoch backends call it; the caller that calls
	// Advance does.
	EpochAdvanced(link string, newEpoch uint64)
}

// NopHooks is a default no-op.
type NopHooks struct{}

func (NopHooks) ChecksumFailed(string)             {}
func (NopHooks) SentinelMismatch(string)           {}
func (NopHooks) Truncated(string, string)          {}
func (NopHooks) InvalidVariant(string, uint8, int) {}
func (NopHooks) DedupeHit(string)                  {}
func (NopHooks) EpochAdvanced(string, uint64)      {}

// Multi returns a Hooks that fans out to all provided hooks, in order. Nil
// entries are ignored. A panic from a hook propagates to the caller.
//
// example usage:
//
//	logH := sloghooks.New(slog.Default(), sloghooks.Options{ChecksumFailedEvery: 10})
//	hooks := aglio.Multi(logH, metricsHooks)
//	// or, to isolate backpressure per hook:
//	hooks := aglio.Multi(asynchook.New(logH, 1, 1000), asynchook.New(metricsHooks, 1, 1000))
func Multi(hs ...Hooks) Hooks {
	nn := make([]Hooks, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			nn = append(nn, h)
		}
	}
	return multiHooks(nn)
}

type multiHooks []Hooks

func (m multiHooks) ChecksumFailed(fp string) {
	for _, h := range m {
		h.ChecksumFailed(fp)
	}
}
func (m multiHooks) SentinelMismatch(fp string) {
	for _, h := range m {
		h.SentinelMismatch(fp)
	}
}
func (m multiHooks) Truncated(fp, path string) {
	for _, h := range m {
		h.Truncated(fp, path)
	}
}
func (m multiHooks) InvalidVariant(fp string, index uint8, tableSize int) {
	for _, h := range m {
		h.InvalidVariant(fp, index, tableSize)
	}
}
func (m multiHooks) DedupeHit(fp string) {
	for _, h := range m {
		h.DedupeHit(fp)
	}
}
func (m multiHooks) EpochAdvanced(link string, newEpoch uint64) {
	for _, h := range m {
		h.EpochAdvanced(link, newEpoch)
	}
}
