package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

// SessionStore persists sessions in Redis. The upstream token and the
// resolved profile live under separate keys so the profile can be refreshed
// without rewriting the token, but Clear always removes both.
//
// Key format: session:<sid>:token and session:<sid>:user
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// Sessions expire after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	payload, err := s.encodeEnvelope(sess)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(sess.ID), sess.Token, s.ttl)
	pipe.Set(ctx, userKey(sess.ID), payload, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, sid string) (*domain.Session, error) {
	vals, err := s.client.MGet(ctx, tokenKey(sid), userKey(sid)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	rawToken, hasToken := vals[0].(string)
	rawUser, hasUser := vals[1].(string)
	if !hasToken && !hasUser {
		return nil, domain.ErrSessionNotFound
	}

	sess := &domain.Session{ID: sid, Token: rawToken}
	if hasUser {
		if err := s.decodeEnvelope(rawUser, sess); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// SaveProfile refreshes the cached profile without touching the token or
// resetting the session's expiry.
func (s *SessionStore) SaveProfile(ctx context.Context, sid string, user *domain.UserProfile) error {
	env := sessionEnvelope{User: user}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.client.Set(ctx, userKey(sid), payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, tokenKey(sid))
	pipe.Del(ctx, userKey(sid))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// sessionEnvelope is the stored JSON form of the non-token session state.
type sessionEnvelope struct {
	User      *domain.UserProfile `json:"user,omitempty"`
	CreatedAt time.Time           `json:"created_at,omitempty"`
}

func (s *SessionStore) encodeEnvelope(sess *domain.Session) ([]byte, error) {
	payload, err := json.Marshal(sessionEnvelope{User: sess.User, CreatedAt: sess.CreatedAt})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return payload, nil
}

func (s *SessionStore) decodeEnvelope(raw string, sess *domain.Session) error {
	var env sessionEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	sess.User = env.User
	sess.CreatedAt = env.CreatedAt
	return nil
}

func tokenKey(sid string) string { return fmt.Sprintf("session:%s:token", sid) }
func userKey(sid string) string  { return fmt.Sprintf("session:%s:user", sid) }
