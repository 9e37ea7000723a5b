package domain

import "time"

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBanned   = "banned"
)

// UserProfile is the resolved identity behind a session, as reported by the
// upstream "who am I" endpoint.
type UserProfile struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	Status      string    `json:"status,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// GuestProfile returns the synthetic profile used for guest sessions.
func GuestProfile() *UserProfile {
	return &UserProfile{Username: "guest", Role: RoleGuest, Status: UserStatusActive}
}
