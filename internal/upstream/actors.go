package upstream

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

const areaActors = "actors"

// Actors issues requests against the backend's actor roster sub-area.
type Actors struct {
	c *Client
}

func NewActors(c *Client) *Actors {
	return &Actors{c: c}
}

func (a *Actors) List(ctx context.Context, token string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	return a.list(ctx, token, a.c.cfg.ActorsPrefix+"/", q)
}

func (a *Actors) ListUnassigned(ctx context.Context, token string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	return a.list(ctx, token, a.c.cfg.ActorsPrefix+"/without-agent/", q)
}

func (a *Actors) list(ctx context.Context, token, path string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	data, err := a.c.do(ctx, call{
		area:   areaActors,
		method: "GET",
		path:   path,
		query:  listQuery(q),
		token:  token,
	})
	if err != nil {
		return domain.ActorPage{}, err
	}
	return decodeActorPage(data)
}

// listQuery mirrors the filters the backend understands. Name search always
// requests contains-mode, and include_tags is forced on even though several
// backend revisions ignore it — the tag backfill covers those.
func listQuery(q ports.ListActorsQuery) url.Values {
	values := url.Values{}
	values.Set("include_tags", "true")
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
		size := q.PageSize
		if size <= 0 {
			size = 10
		}
		values.Set("page_size", strconv.Itoa(size))
	}
	if q.Name != "" {
		values.Set("name", q.Name)
		values.Set("search_mode", "contains")
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if len(q.TagIDs) > 0 {
		ids := make([]string, len(q.TagIDs))
		for i, id := range q.TagIDs {
			ids[i] = strconv.Itoa(id)
		}
		values.Set("tag_ids", strings.Join(ids, ","))
		mode := q.TagSearchMode
		if mode == "" {
			mode = "any"
		}
		values.Set("tag_search_mode", mode)
	}
	return values
}

// decodeActorPage normalizes whatever shape the backend produced into the
// uniform page, then types the raw items.
func decodeActorPage(data []byte) (domain.ActorPage, error) {
	raw := DecodePage(data)
	page := domain.ActorPage{Items: make([]domain.Actor, 0, len(raw.Items)), Total: raw.Total}
	for _, item := range raw.Items {
		var actor domain.Actor
		if err := json.Unmarshal(item, &actor); err != nil {
			// A malformed element does not sink the page.
			continue
		}
		page.Items = append(page.Items, actor)
	}
	return page, nil
}

func (a *Actors) Get(ctx context.Context, token, actorID string) (*domain.Actor, error) {
	var actor domain.Actor
	if err := a.c.getJSON(ctx, areaActors, a.c.cfg.ActorsPrefix+"/"+actorID, nil, token, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (a *Actors) Create(ctx context.Context, token string, in ports.ActorInput) (*domain.Actor, error) {
	var actor domain.Actor
	if err := a.c.postJSON(ctx, areaActors, a.c.cfg.ActorsPrefix+"/", token, in, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (a *Actors) Update(ctx context.Context, token, actorID string, in ports.ActorInput) (*domain.Actor, error) {
	var actor domain.Actor
	if err := a.c.putJSON(ctx, areaActors, a.c.cfg.ActorsPrefix+"/"+actorID, token, in, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (a *Actors) Delete(ctx context.Context, token, actorID string) error {
	return a.c.deleteJSON(ctx, areaActors, a.c.cfg.ActorsPrefix+"/"+actorID, token)
}

func (a *Actors) SelfUpdate(ctx context.Context, token string, in ports.ActorInput) (*domain.Actor, error) {
	var actor domain.Actor
	if err := a.c.postJSON(ctx, areaActors, a.c.cfg.ActorsPrefix+"/self-update", token, in, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}
