package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "wb:sent_order:"

// RedisConfig conexión a Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisSentStore conjunto compartido entre instancias; la expiración la
// maneja Redis con el TTL de cada clave.
type RedisSentStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSentStore conecta y verifica con PING.
func NewRedisSentStore(ctx context.Context, cfg RedisConfig, ttl time.Duration) (*RedisSentStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: conectar a Redis: %w", err)
	}
	return NewRedisSentStoreWithClient(client, "", ttl), nil
}

// NewRedisSentStoreWithClient reutiliza un cliente existente.
func NewRedisSentStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSentStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisSentStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *RedisSentStore) key(sellerID int64, orderID string) string {
	return s.keyPrefix + sentKey(sellerID, orderID)
}

func (s *RedisSentStore) Seen(ctx context.Context, sellerID int64, orderID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sellerID, orderID)).Result()
	if err != nil {
		return false, fmt.Errorf("cache: consultar orden: %w", err)
	}
	return n > 0, nil
}

func (s *RedisSentStore) Mark(ctx context.Context, sellerID int64, orderID string) error {
	if err := s.client.Set(ctx, s.key(sellerID, orderID), "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("cache: marcar orden: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (s *RedisSentStore) Close() error {
	return s.client.Close()
}
