package epoch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares per-link epochs across processes and survives restarts.
// Optionally a TTL can be applied to epoch keys to prevent unbounded growth;
// if an epoch key expires, readers observe epoch=0.
type Redis struct {
	rdb redis.UniversalClient
	ns  string
	ttl time.Duration
}

var _ Store = (*Redis)(nil)

func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, ns: namespace}
}

func NewRedisWithTTL(client redis.UniversalClient, namespace string, ttl time.Duration) *Redis {
	return &Redis{rdb: client, ns: namespace, ttl: ttl}
}

func (s *Redis) key(link string) string { return "epoch:" + s.ns + ":" + link }

func (s *Redis) Current(ctx context.Context, link string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(link)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("epoch: redis parse: %w", err)
	}
	return u, nil
}

func (s *Redis) CurrentMany(ctx context.Context, links []string) (map[string]uint64, error) {
	if len(links) == 0 {
		return map[string]uint64{}, nil
	}
	keys := make([]string, len(links))
	for i, link := range links {
		keys[i] = s.key(link)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]uint64, len(links))
	for i, v := range vals {
		if v == nil {
			out[links[i]] = 0
			continue
		}
		u, err := strconv.ParseUint(fmt.Sprint(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("epoch: redis parse at %s: %w", links[i], err)
		}
		out[links[i]] = u
	}
	return out, nil
}

func (s *Redis) Advance(ctx context.Context, link string) (uint64, error) {
	k := s.key(link)
	if s.ttl <= 0 {
		v, err := s.rdb.Incr(ctx, k).Result()
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}

	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

func (s *Redis) Cleanup(time.Duration) {}

func (s *Redis) Close(context.Context) error { return s.rdb.Close() }
