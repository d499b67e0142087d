package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores each session as a JSON value whose Redis TTL
// follows ExpiresAt.
type RedisRepository struct {
	client    redis.Cmdable
	keyPrefix string
	now       func() time.Time
	logger    *slog.Logger
}

func NewRedisRepository(client redis.Cmdable, keyPrefix string, logger *slog.Logger) *RedisRepository {
	logger.Debug("Initializing redis session repository", "key_prefix", keyPrefix)

	return &RedisRepository{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
		logger:    logger,
	}
}

func (r *RedisRepository) key(id uuid.UUID) string {
	return r.keyPrefix + id.String()
}

// ttl never returns a non-positive duration: go-redis reads 0 as "no
// expiry" and -1 as KEEPTTL.
func (r *RedisRepository) ttl(s *Session) time.Duration {
	if d := s.ExpiresAt.Sub(r.now()); d > time.Millisecond {
		return d
	}
	return time.Millisecond
}

func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	logger := r.logger.With("component", "session_redis_repository", "operation", "create", "session_id", s.ID)

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(s.ID), data, r.ttl(s)).Result()
	if err != nil {
		logger.Error("Failed to store session", "error", err)
		return fmt.Errorf("failed to store session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}

	return nil
}

func (r *RedisRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to load session", "component", "session_redis_repository", "operation", "get", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &s, nil
}

func (r *RedisRepository) Update(ctx context.Context, s *Session) error {
	logger := r.logger.With("component", "session_redis_repository", "operation", "update", "session_id", s.ID)

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ok, err := r.client.SetXX(ctx, r.key(s.ID), data, r.ttl(s)).Result()
	if err != nil {
		logger.Error("Failed to update session", "error", err)
		return fmt.Errorf("failed to update session: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		r.logger.Error("Failed to delete session", "component", "session_redis_repository", "operation", "delete", "session_id", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
