package domain

import "time"

// ActorStatus represents the roster lifecycle state of an actor record.
type ActorStatus string

const (
	ActorActive      ActorStatus = "active"
	ActorInactive    ActorStatus = "inactive"
	ActorSuspended   ActorStatus = "suspended"
	ActorRetired     ActorStatus = "retired"
	ActorBlacklisted ActorStatus = "blacklisted"
	ActorDeleted     ActorStatus = "deleted"
)

// ContractInfo links an actor to the manager responsible for them.
type ContractInfo struct {
	AgentID int `json:"agent_id,omitempty"`
}

// Actor is the roster aggregate as the upstream reports it. An actor with
// no agent (AgentID zero both top-level and in ContractInfo) is unassigned
// and shows up in the without-agent queries.
type Actor struct {
	ID           string        `json:"id"`
	UserID       int           `json:"user_id,omitempty"`
	AgentID      int           `json:"agent_id,omitempty"`
	ContractInfo *ContractInfo `json:"contract_info,omitempty"`
	RealName     string        `json:"real_name"`
	StageName    string        `json:"stage_name,omitempty"`
	Gender       string        `json:"gender,omitempty"`
	Age          int           `json:"age,omitempty"`
	HeightCm     int           `json:"height,omitempty"`
	WeightKg     int           `json:"weight,omitempty"`
	Status       ActorStatus   `json:"status,omitempty"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
	Tags         []Tag         `json:"tags,omitempty"`
	CreatedAt    time.Time     `json:"created_at,omitempty"`
	UpdatedAt    time.Time     `json:"updated_at,omitempty"`
}

// Agent returns the effective agent id, honouring both of the upstream's
// placements for it.
func (a *Actor) Agent() int {
	if a.AgentID != 0 {
		return a.AgentID
	}
	if a.ContractInfo != nil {
		return a.ContractInfo.AgentID
	}
	return 0
}

// Unassigned reports whether no manager owns this actor.
func (a *Actor) Unassigned() bool { return a.Agent() == 0 }

// ActorPage is the uniform list-with-total shape every listing resolves to,
// regardless of which response variant the upstream produced.
type ActorPage struct {
	Items []Actor `json:"items"`
	Total int     `json:"total"`
}
