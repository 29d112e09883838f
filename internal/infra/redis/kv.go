package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// DefaultPrefix namespaces collection keys in a shared Redis database.
const DefaultPrefix = "quiz-builder:"

// KV stores each key as a plain Redis string: SET {prefix}{key} {json}.
// Keys never expire; the collections are the only copy of the data.
type KV struct {
	client *redis.Client
	prefix string
	sf     singleflight.Group
}

func NewKV(client *redis.Client, prefix string) *KV {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &KV{client: client, prefix: prefix}
}

func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	type result struct {
		value string
		ok    bool
	}
	// Overlapping Gets of one key, e.g. from several controllers over one
	// KV, share a round trip.
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		value, err := s.client.Get(ctx, s.key(key)).Result()
		if errors.Is(err, redis.Nil) {
			return result{}, nil
		}
		if err != nil {
			return result{}, err
		}
		return result{value: value, ok: true}, nil
	})
	if err != nil {
		return "", false, err
	}
	r := v.(result)
	return r.value, r.ok, nil
}

func (s *KV) Set(ctx context.Context, key, value string) error {
	s.sf.Forget(key)
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *KV) key(key string) string {
	return s.prefix + key
}
