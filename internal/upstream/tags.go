package upstream

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

const areaTags = "tags"

// Tags issues requests against the tag taxonomy and the actor-tag join.
type Tags struct {
	c *Client
}

func NewTags(c *Client) *Tags {
	return &Tags{c: c}
}

func (t *Tags) List(ctx context.Context, token string) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := t.c.getJSON(ctx, areaTags, t.c.cfg.TagsPrefix, nil, token, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (t *Tags) Get(ctx context.Context, token string, tagID int) (*domain.Tag, error) {
	var tag domain.Tag
	if err := t.c.getJSON(ctx, areaTags, t.tagPath(tagID), nil, token, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (t *Tags) Create(ctx context.Context, token string, in ports.TagInput) (*domain.Tag, error) {
	var tag domain.Tag
	if err := t.c.postJSON(ctx, areaTags, t.c.cfg.TagsPrefix, token, in, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (t *Tags) Update(ctx context.Context, token string, tagID int, in ports.TagInput) (*domain.Tag, error) {
	var tag domain.Tag
	if err := t.c.putJSON(ctx, areaTags, t.tagPath(tagID), token, in, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (t *Tags) Delete(ctx context.Context, token string, tagID int) error {
	return t.c.deleteJSON(ctx, areaTags, t.tagPath(tagID), token)
}

// ForActors is the batched backfill lookup: one call keyed by the full id
// set, answered as a map of actor id to tag list.
func (t *Tags) ForActors(ctx context.Context, token string, actorIDs []string) (map[string][]domain.Tag, error) {
	query := url.Values{}
	query.Set("actor_ids", strings.Join(actorIDs, ","))

	grouped := map[string][]domain.Tag{}
	if err := t.c.getJSON(ctx, areaTags, t.c.cfg.TagsPrefix, query, token, &grouped); err != nil {
		return nil, err
	}
	return grouped, nil
}

// ActorTags is the per-entity fallback lookup.
func (t *Tags) ActorTags(ctx context.Context, token, actorID string) ([]domain.Tag, error) {
	var envelope struct {
		Tags []domain.Tag `json:"tags"`
	}
	if err := t.c.getJSON(ctx, areaTags, t.actorPath(actorID)+"/tags", nil, token, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tags, nil
}

func (t *Tags) AttachTags(ctx context.Context, token, actorID string, tagIDs []int) error {
	return t.c.postJSON(ctx, areaTags, t.actorPath(actorID)+"/tags", token, tagIDsBody(tagIDs), nil)
}

func (t *Tags) ReplaceTags(ctx context.Context, token, actorID string, tagIDs []int) error {
	return t.c.putJSON(ctx, areaTags, t.actorPath(actorID)+"/tags", token, tagIDsBody(tagIDs), nil)
}

func (t *Tags) DetachTag(ctx context.Context, token, actorID string, tagID int) error {
	return t.c.deleteJSON(ctx, areaTags, t.actorPath(actorID)+"/tags/"+strconv.Itoa(tagID), token)
}

func (t *Tags) tagPath(tagID int) string {
	return t.c.cfg.TagsPrefix + "/" + strconv.Itoa(tagID)
}

func (t *Tags) actorPath(actorID string) string {
	return t.c.cfg.TagsPrefix + "/" + actorID
}

type tagIDsPayload struct {
	TagIDs []int `json:"tag_ids"`
}

func tagIDsBody(ids []int) tagIDsPayload {
	return tagIDsPayload{TagIDs: ids}
}
