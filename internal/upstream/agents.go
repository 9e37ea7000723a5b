package upstream

import (
	"context"
	"strconv"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

const areaAgents = "agents"

// Agents issues requests against agent-to-actor assignment.
type Agents struct {
	c *Client
}

func NewAgents(c *Client) *Agents {
	return &Agents{c: c}
}

type assignRequest struct {
	ActorID string `json:"actor_id"`
	AgentID int    `json:"agent_id"`
}

func (a *Agents) Assign(ctx context.Context, token, actorID string, agentID int) error {
	return a.c.postJSON(ctx, areaAgents, a.c.cfg.AgentPrefix+"/assign-agent", token,
		assignRequest{ActorID: actorID, AgentID: agentID}, nil)
}

// Actors lists everyone currently owned by the given agent.
func (a *Agents) Actors(ctx context.Context, token string, agentID int) (domain.ActorPage, error) {
	data, err := a.c.do(ctx, call{
		area:   areaAgents,
		method: "GET",
		path:   a.c.cfg.AgentPrefix + "/" + strconv.Itoa(agentID) + "/actors",
		token:  token,
	})
	if err != nil {
		return domain.ActorPage{}, err
	}
	return decodeActorPage(data)
}

func (a *Agents) Unassign(ctx context.Context, token, actorID string) error {
	return a.c.deleteJSON(ctx, areaAgents, a.c.cfg.AgentPrefix+"/actor/"+actorID+"/agent", token)
}
