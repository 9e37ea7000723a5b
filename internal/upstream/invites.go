package upstream

import (
	"context"
	"encoding/json"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

const areaInvites = "invites"

// Invites issues requests against invite-code management and verification.
type Invites struct {
	c *Client
}

func NewInvites(c *Client) *Invites {
	return &Invites{c: c}
}

func (i *Invites) List(ctx context.Context, token string) ([]domain.InviteCode, error) {
	data, err := i.c.do(ctx, call{area: areaInvites, method: "GET", path: i.c.cfg.InvitesPrefix + "/", token: token})
	if err != nil {
		return nil, err
	}

	page := DecodePage(data)
	codes := make([]domain.InviteCode, 0, len(page.Items))
	for _, raw := range page.Items {
		var code domain.InviteCode
		if err := json.Unmarshal(raw, &code); err != nil {
			continue
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func (i *Invites) Create(ctx context.Context, token string) (*domain.InviteCode, error) {
	var code domain.InviteCode
	if err := i.c.postJSON(ctx, areaInvites, i.c.cfg.InvitesPrefix+"/", token, nil, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

type inviteStatusRequest struct {
	Status domain.InviteCodeStatus `json:"status"`
}

func (i *Invites) Update(ctx context.Context, token, codeID string, status domain.InviteCodeStatus) (*domain.InviteCode, error) {
	var code domain.InviteCode
	if err := i.c.putJSON(ctx, areaInvites, i.c.cfg.InvitesPrefix+"/"+codeID, token, inviteStatusRequest{Status: status}, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (i *Invites) Delete(ctx context.Context, token, codeID string) error {
	return i.c.deleteJSON(ctx, areaInvites, i.c.cfg.InvitesPrefix+"/"+codeID, token)
}

// Verify checks a code without consuming it. The backend answers 404 for an
// unknown code and 400 for a known but inactive one.
func (i *Invites) Verify(ctx context.Context, code string) (*domain.InviteCode, error) {
	var out domain.InviteCode
	if err := i.c.getJSON(ctx, areaInvites, i.c.cfg.InvitesPrefix+"/verify/"+code, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
