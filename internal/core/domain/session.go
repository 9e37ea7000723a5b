package domain

import "time"

// Session binds an upstream bearer token to its resolved user profile.
//
// Invariant: User is present only when Token has been validated against the
// upstream profile endpoint. Guest sessions are the one exception — they
// carry an empty Token and a synthetic guest profile, and are never sent
// upstream authenticated.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token,omitempty"`
	User      *UserProfile `json:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Authenticated reports whether the session has a resolved identity
// (guest counts: a guest is authenticated at the gateway, not upstream).
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// IsGuest reports whether this is a synthetic guest session.
func (s *Session) IsGuest() bool {
	return s != nil && s.User != nil && s.User.Role == RoleGuest
}
