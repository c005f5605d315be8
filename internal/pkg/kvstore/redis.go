package kvstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore é a implementação de Store e Counter sobre Redis.
type RedisStore struct {
	rdb     *redis.Client
	timeout time.Duration
}

// NewRedisStore cria o cliente Redis e verifica a conexão com PING.
func NewRedisStore(addr string, timeout time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}

	return &RedisStore{rdb: rdb, timeout: timeout}, nil
}

// Get recupera o valor associado a uma chave.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set grava o valor sem expiração.
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.rdb.Set(ctx, key, value, 0).Err()
}

// Delete remove uma chave (sem erro se não existir).
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.rdb.Del(ctx, key).Err()
}

// Incr incrementa o contador; a janela começa no primeiro incremento.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// Close encerra o pool de conexões.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
