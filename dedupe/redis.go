package dedupe

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares seen fingerprints across processes via presence keys. Seen
// is an EXISTS and Mark a plain SET, so the pair is not atomic: two
// processes that check the same fingerprint before either marks it both
// see it as new.
type Redis struct {
	rdb redis.UniversalClient
	ns  string
}

var _ Store = (*Redis)(nil)

func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, ns: namespace}
}

func (s *Redis) key(fingerprint string) string { return "dedupe:" + s.ns + ":" + fingerprint }

func (s *Redis) Seen(ctx context.Context, fingerprint string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(fingerprint)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Redis) Mark(ctx context.Context, fingerprint string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(fingerprint), []byte{1}, ttl).Err()
}

func (s *Redis) Close(context.Context) error { return s.rdb.Close() }
