package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/campusnet/internal/pkg/metrics"
)

const revokedTokenKeyPrefix = "campusnet:revoked:jti:"

// RevocationList records logged-out tokens until they expire
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevocationList shares revocations across instances through Redis
type RedisRevocationList struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

// NewRedisRevocationList creates a Redis-backed revocation list
func NewRedisRevocationList(client *redis.Client, m *metrics.Metrics) *RedisRevocationList {
	return &RedisRevocationList{client: client, metrics: m}
}

// Revoke stores a marker key that expires with the token
func (l *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the marker key exists
func (l *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	defer l.metrics.ObserveRevocationCheck(time.Now())

	if jti == "" {
		return false, nil
	}
	_, err := l.client.Get(ctx, revokedTokenKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryRevocationList keeps revocations in process
type MemoryRevocationList struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationList creates an in-process revocation list
func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{expires: map[string]time.Time{}, now: time.Now}
}

// Revoke records jti until ttl elapses
func (l *MemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, exp := range l.expires {
		if !exp.After(now) {
			delete(l.expires, k)
		}
	}
	l.expires[jti] = now.Add(ttl)
	return nil
}

// IsRevoked reports whether jti was revoked and has not yet expired
func (l *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exp, ok := l.expires[jti]
	return ok && exp.After(l.now()), nil
}
