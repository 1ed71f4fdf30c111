package localstore

import (
	"context"

	"github.com/redis/go-redis/v9"

	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
)

const keyPrefix = "gretastore:"

type redisStore struct {
	rdb *redis.Client
}

// OpenRedis connects to Redis and fails fast when the server is unreachable.
func OpenRedis(ctx context.Context, addr, password string) (repository.LocalStorage, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Unavailable("Local store is unreachable", err)
	}
	return NewRedis(rdb), nil
}

func NewRedis(rdb *redis.Client) repository.LocalStorage {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Internal("Failed to read local store", err)
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return errors.Internal("Failed to write local store", err)
	}
	return nil
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Internal("Failed to delete from local store", err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.rdb.Close()
}
