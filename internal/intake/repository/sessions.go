// Package repository implements the active-session store on Redis. Session
// state is small JSON and conversations are short-lived, so a TTL-bounded
// key per conversation is enough.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"prequal_backend/internal/intake/domain"
	"prequal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "intake:session:"

type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// Save writes the full session state, refreshing its TTL.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err()
}

// Get loads a session by id. Missing or expired sessions map to not-found.
func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, apperr.NotFound("conversation not found")
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}
