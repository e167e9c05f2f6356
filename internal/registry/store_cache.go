package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CachedStore is a read-through cache in front of another Store.
//
// Only RIZIV lookups are cached: they are exact-key reads on the primary
// matching tier. Substring searches pass through so a stale candidate list
// can never decide tier 2. Cache failures degrade to the inner store; the
// cache never fails a lookup on its own.
type CachedStore struct {
	inner  Store
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps inner with a Redis read-through cache.
func NewCached(inner Store, client *goredis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (s *CachedStore) LookupByRiziv(ctx context.Context, rizivNumber string) (*Entry, error) {
	key := "registry:riziv:" + rizivNumber

	raw, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err == nil {
			return &entry, nil
		}
		// Unreadable payload; fall through and repopulate.
	} else if err != goredis.Nil {
		s.logger.WarnContext(ctx, "registry cache read failed", "error", err)
	}

	entry, err := s.inner.LookupByRiziv(ctx, rizivNumber)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(entry); err == nil {
		if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "registry cache write failed", "error", err)
		}
	}
	return entry, nil
}

func (s *CachedStore) SearchByLastName(ctx context.Context, lastName string) ([]*Entry, error) {
	return s.inner.SearchByLastName(ctx, lastName)
}

func (s *CachedStore) SearchByLastNameAndCity(ctx context.Context, lastName, city string) ([]*Entry, error) {
	return s.inner.SearchByLastNameAndCity(ctx, lastName, city)
}
