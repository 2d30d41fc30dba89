package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// RedisStore хранит записи в Redis, чтобы несколько инстансов делили
// полученную от провайдера доступность. Ключи истекают через ttl.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore создает хранилище поверх Redis
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (domain.DateAvailabilityRecord, bool, error) {
	var record domain.DateAvailabilityRecord

	val, err := s.rdb.Get(ctx, s.prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return record, false, nil
	}
	if err != nil {
		return record, false, fmt.Errorf("%w: get %s: %v", ErrStore, key, err)
	}

	if err := json.Unmarshal(val, &record); err != nil {
		return record, false, fmt.Errorf("%w: decode %s: %v", ErrStore, key, err)
	}
	return record, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, record domain.DateAvailabilityRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStore, key, err)
	}

	if err := s.rdb.Set(ctx, s.prefix+":"+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStore, key, err)
	}
	return nil
}
