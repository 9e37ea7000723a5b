package ports

import (
	"context"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

// SessionStore persists sessions in durable storage. Implementations keep
// the token and profile under separate keys but Clear must remove both
// together.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	Load(ctx context.Context, sid string) (*domain.Session, error)
	SaveProfile(ctx context.Context, sid string, user *domain.UserProfile) error
	Clear(ctx context.Context, sid string) error
}

// SessionService owns the session lifecycle: created on login/registration/
// guest-login, resolved on every request, cleared on logout or on an
// unrecoverable authentication failure.
type SessionService interface {
	// Login authenticates against the upstream and returns the signed
	// gateway token alongside the stored session.
	Login(ctx context.Context, username, password string) (string, *domain.Session, error)
	// GuestLogin mints a synthetic read-only session with no upstream token.
	GuestLogin(ctx context.Context) (string, *domain.Session, error)
	// Register verifies the invite code, registers upstream, then logs the
	// new account in.
	Register(ctx context.Context, in RegisterInput) (string, *domain.Session, error)
	// Logout clears the session unconditionally.
	Logout(ctx context.Context, sid string) error
	// Resolve loads the session and re-validates the token against the
	// upstream profile endpoint when the profile is missing.
	Resolve(ctx context.Context, sid string) (*domain.Session, error)
	// Invalidate drops a session whose token the upstream has rejected.
	Invalidate(ctx context.Context, sid string) error
}

// RegisterInput is a self-registration request gated by an invite code.
type RegisterInput struct {
	Username   string
	Password   string
	Phone      string
	InviteCode string
}
