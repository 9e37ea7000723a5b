package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthExpired means the upstream rejected the bearer token and the
	// single re-validation attempt did not rescue it. The session is dead.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrForbidden is an upstream 403. Surfaced to the caller as-is; the
	// session is left untouched.
	ErrForbidden = errors.New("access forbidden")

	ErrNotFound            = errors.New("entity not found")
	ErrUpstream            = errors.New("upstream error")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionResolving marks a transient session-store failure. Callers
	// must not treat it as an expired session.
	ErrSessionResolving = errors.New("session not yet resolved")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInviteCodeInvalid  = errors.New("invite code is not active")

	// ErrQuerySuperseded is returned for a list query whose result arrived
	// after a newer query for the same key had already started.
	ErrQuerySuperseded = errors.New("query superseded by a newer request")
)

// ValidationError carries the upstream's validation detail verbatim so the
// caller sees exactly what the backend complained about.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Detail)
}
