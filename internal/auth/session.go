package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session ID has no live entry,
// either because it never existed or because it passively expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists login sessions keyed by an opaque session ID.
// Lifecycle: create at login, read per request, delete at logout; entries
// expire passively by age.
type SessionStore interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "session:"

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore returns a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	sessionID := uuid.NewString()
	key := sessionKeyPrefix + sessionID
	if err := s.client.Set(ctx, key, strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return userID, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
