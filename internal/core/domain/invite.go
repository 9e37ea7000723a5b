package domain

import "time"

// InviteCodeStatus is the lifecycle of a registration invite.
type InviteCodeStatus string

const (
	InviteActive   InviteCodeStatus = "active"
	InviteUsed     InviteCodeStatus = "used"
	InviteInactive InviteCodeStatus = "inactive"
)

// InviteCode gates self-registration. Codes are six digits and are consumed
// exactly once.
type InviteCode struct {
	ID        string           `json:"id"`
	Code      string           `json:"code"`
	Status    InviteCodeStatus `json:"status"`
	AgentID   int              `json:"agent_id,omitempty"`
	UsedBy    int              `json:"used_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Usable reports whether the code can still be consumed at registration.
func (c *InviteCode) Usable() bool {
	return c != nil && c.Status == InviteActive
}
