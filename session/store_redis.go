package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys as "<prefix>:<id>".
const DefaultRedisPrefix = "gs"

const purgeScanCount = 256

// RedisStore implements [Store] on Redis. Each session is one key holding
// the [Encode] blob.
type RedisStore struct {
	redis     redis.UniversalClient
	prefix    string
	retention time.Duration
}

// NewRedisStore creates a [RedisStore] backed by the given client.
// prefix sets the key namespace (default "gs"). retention, when positive,
// becomes the key TTL so Redis reclaims sessions that are never read again;
// it should exceed the session lifetime. Zero leaves keys without TTL.
//
//	Docs: docs/session.md
func NewRedisStore(rdb redis.UniversalClient, prefix string, retention time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	if retention < 0 {
		retention = 0
	}
	return &RedisStore{
		redis:     rdb,
		prefix:    prefix,
		retention: retention,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

// Create stores rec with SET NX.
//
//	Performance: 1 Redis command.
func (s *RedisStore) Create(ctx context.Context, rec Record) error {
	ok, err := s.redis.SetNX(ctx, s.key(rec.ID), Encode(rec), s.retention).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

// FindByID loads the record for id. A missing key is (Record{}, false, nil).
//
//	Performance: 1 Redis GET.
func (s *RedisStore) FindByID(ctx context.Context, id string) (Record, bool, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	rec, err := Decode(data)
	if err != nil {
		return Record{}, false, err
	}
	rec.ID = id
	return rec, true, nil
}

// DeleteByID removes the key for id. Zero keys removed maps to [ErrNotFound].
//
//	Performance: 1 Redis DEL.
func (s *RedisStore) DeleteByID(ctx context.Context, id string) error {
	n, err := s.redis.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeCreatedBefore scans the prefix and deletes records issued before
// cutoff. It is not atomic across keys; a key deleted concurrently is
// simply not counted. Undecodable blobs are left for inspection.
//
//	Performance: O(keys under prefix) SCAN + GET, one DEL per purged key.
func (s *RedisStore) PurgeCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var (
		cursor uint64
		purged int64
	)
	match := s.prefix + ":*"

	for {
		keys, next, err := s.redis.Scan(ctx, cursor, match, purgeScanCount).Result()
		if err != nil {
			return purged, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		for _, key := range keys {
			data, err := s.redis.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				return purged, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			rec, err := Decode(data)
			if err != nil || !rec.CreatedAt.Before(cutoff) {
				continue
			}
			n, err := s.redis.Del(ctx, key).Result()
			if err != nil {
				return purged, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			purged += n
		}

		cursor = next
		if cursor == 0 {
			return purged, nil
		}
	}
}

// Ping measures a Redis round trip.
func (s *RedisStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}
