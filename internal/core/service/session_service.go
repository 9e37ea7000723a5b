package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/qiaoguanyu11/actorreal/internal/auth"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

const defaultProfileRetryDelay = 2 * time.Second

// SessionService implements the session lifecycle: created on login,
// registration, or guest login; resolved on every request; cleared on
// logout or unrecoverable authentication failure.
type SessionService struct {
	store   ports.SessionStore
	authc   ports.AuthClient
	invites ports.InviteClient
	tokens  *auth.TokenManager
	log     zerolog.Logger

	// retryDelay is the fixed pause before the single profile-fetch retry
	// on a server error.
	retryDelay time.Duration
}

func NewSessionService(
	store ports.SessionStore,
	authc ports.AuthClient,
	invites ports.InviteClient,
	tokens *auth.TokenManager,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		store:      store,
		authc:      authc,
		invites:    invites,
		tokens:     tokens,
		log:        log,
		retryDelay: defaultProfileRetryDelay,
	}
}

func (s *SessionService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	res, err := s.authc.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	user := res.User
	if user == nil {
		// Older backend revisions return only the token.
		if user, err = s.fetchProfile(ctx, res.AccessToken); err != nil {
			return "", nil, err
		}
	}

	return s.establish(ctx, res.AccessToken, user)
}

// GuestLogin mints a synthetic read-only session. No upstream token is ever
// issued for guests.
func (s *SessionService) GuestLogin(ctx context.Context) (string, *domain.Session, error) {
	return s.establish(ctx, "", domain.GuestProfile())
}

// Register verifies the invite code, registers the account upstream, then
// runs the login flow so registration populates the session.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.Session, error) {
	code, err := s.invites.Verify(ctx, in.InviteCode)
	if err != nil {
		return "", nil, err
	}
	if !code.Usable() {
		return "", nil, domain.ErrInviteCodeInvalid
	}

	if _, err := s.authc.Register(ctx, ports.CreateUserInput{
		Username:   in.Username,
		Password:   in.Password,
		Phone:      in.Phone,
		InviteCode: in.InviteCode,
	}); err != nil {
		return "", nil, err
	}

	return s.Login(ctx, in.Username, in.Password)
}

// Logout clears the session unconditionally: both the stored token and the
// profile go together.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	return s.store.Clear(ctx, sid)
}

// Invalidate drops a session whose token the upstream has rejected.
func (s *SessionService) Invalidate(ctx context.Context, sid string) error {
	return s.store.Clear(ctx, sid)
}

// Resolve loads the session and, when the profile is missing, re-validates
// the token against the upstream profile endpoint. An authorization failure
// clears the session and is not retried; a server failure is retried once
// after a fixed delay, then reported as transient.
func (s *SessionService) Resolve(ctx context.Context, sid string) (*domain.Session, error) {
	sess, err := s.store.Load(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionResolving, err)
	}

	if sess.User != nil {
		return sess, nil
	}
	if sess.Token == "" {
		// Neither profile nor token: nothing left to resolve.
		_ = s.store.Clear(ctx, sid)
		return nil, domain.ErrSessionNotFound
	}

	user, err := s.fetchProfile(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, domain.ErrAuthExpired) || errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Info().Str("sid", sid).Msg("stored token rejected, clearing session")
			_ = s.store.Clear(ctx, sid)
			return nil, domain.ErrAuthExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionResolving, err)
	}

	if err := s.store.SaveProfile(ctx, sid, user); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("failed to cache resolved profile")
	}
	sess.User = user
	return sess, nil
}

// fetchProfile calls the upstream "who am I" endpoint. Auth failures are
// final; server and network failures get one retry after a fixed delay.
func (s *SessionService) fetchProfile(ctx context.Context, token string) (*domain.UserProfile, error) {
	user, err := s.authc.Me(ctx, token)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUpstream) && !errors.Is(err, domain.ErrUpstreamUnavailable) {
		return nil, err
	}

	s.log.Warn().Err(err).Msg("profile fetch failed with server error, retrying once")
	select {
	case <-time.After(s.retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.authc.Me(ctx, token)
}

func (s *SessionService) establish(ctx context.Context, token string, user *domain.UserProfile) (string, *domain.Session, error) {
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	signed, err := s.tokens.Issue(sess)
	if err != nil {
		_ = s.store.Clear(ctx, sess.ID)
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	s.log.Info().
		Str("sid", sess.ID).
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Msg("session established")

	return signed, sess, nil
}
