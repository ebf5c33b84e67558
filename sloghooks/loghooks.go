package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/aglio"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ChecksumFailedEvery   uint64
	SentinelMismatchEvery uint64
	// Optional fingerprint redactor. Defaults to an 8-byte SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	checksumCtr atomic.Uint64
	sentinelCtr atomic.Uint64
}

var _ aglio.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(fp string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(fp)
	}
	sum := sha256.Sum256([]byte(fp))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ChecksumFailed(fp string) {
	if h.l == nil || !sample(h.opts.ChecksumFailedEvery, &h.checksumCtr) {
		return
	}
	h.l.Warn("aglio.checksum_failed", "fingerprint", h.redact(fp))
}

func (h *Hooks) SentinelMismatch(fp string) {
	if h.l == nil || !sample(h.opts.SentinelMismatchEvery, &h.sentinelCtr) {
		return
	}
	h.l.Warn("aglio.sentinel_mismatch", "fingerprint", h.redact(fp))
}

func (h *Hooks) Truncated(fp, path string) {
	if h.l == nil {
		return
	}
	h.l.Debug("aglio.truncated", "fingerprint", h.redact(fp), "path", path)
}

func (h *Hooks) InvalidVariant(fp string, index uint8, tableSize int) {
	if h.l == nil {
		return
	}
	h.l.Warn("aglio.invalid_variant",
		"fingerprint", h.redact(fp),
		"index", index,
		"table_size", tableSize)
}

func (h *Hooks) DedupeHit(fp string) {
	if h.l == nil {
		return
	}
	h.l.Debug("aglio.dedupe_hit", "fingerprint", h.redact(fp))
}

func (h *Hooks) EpochAdvanced(link string, newEpoch uint64) {
	if h.l == nil {
		return
	}
	h.l.Info("aglio.epoch_advanced", "link", link, "new_epoch", newEpoch)
}
