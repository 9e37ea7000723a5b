package upstream

import (
	"context"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

const areaMedia = "media"

// Media issues requests against actor media management, including the
// self-service endpoints performers use on their own record.
type Media struct {
	c *Client
}

func NewMedia(c *Client) *Media {
	return &Media{c: c}
}

func (m *Media) List(ctx context.Context, token, actorID string) ([]domain.MediaItem, error) {
	return m.listAt(ctx, token, m.c.cfg.MediaPrefix+"/"+actorID+"/media")
}

func (m *Media) Upload(ctx context.Context, token, actorID string, up ports.MediaUpload) (*domain.MediaItem, error) {
	return m.uploadAt(ctx, token, m.c.cfg.MediaPrefix+"/"+actorID+"/media/"+string(up.Kind), up)
}

func (m *Media) Delete(ctx context.Context, token, actorID, mediaID string) error {
	return m.c.deleteJSON(ctx, areaMedia, m.c.cfg.MediaPrefix+"/"+actorID+"/media/"+mediaID, token)
}

func (m *Media) SelfList(ctx context.Context, token string) ([]domain.MediaItem, error) {
	return m.listAt(ctx, token, m.c.cfg.SelfMediaPrefix+"/")
}

func (m *Media) SelfUpload(ctx context.Context, token string, up ports.MediaUpload) (*domain.MediaItem, error) {
	return m.uploadAt(ctx, token, m.c.cfg.SelfMediaPrefix+"/"+string(up.Kind), up)
}

func (m *Media) SelfDelete(ctx context.Context, token, mediaID string) error {
	return m.c.deleteJSON(ctx, areaMedia, m.c.cfg.SelfMediaPrefix+"/"+mediaID, token)
}

// listAt tolerates both the bare-array and {items} shapes media endpoints
// have been seen returning.
func (m *Media) listAt(ctx context.Context, token, path string) ([]domain.MediaItem, error) {
	data, err := m.c.do(ctx, call{area: areaMedia, method: "GET", path: path, token: token})
	if err != nil {
		return nil, err
	}

	page := DecodePage(data)
	items := make([]domain.MediaItem, 0, len(page.Items))
	for _, raw := range page.Items {
		var item domain.MediaItem
		if err := decode(raw, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *Media) uploadAt(ctx context.Context, token, path string, up ports.MediaUpload) (*domain.MediaItem, error) {
	if !domain.ValidMediaKind(up.Kind) {
		return nil, &domain.ValidationError{Detail: "unknown media kind: " + string(up.Kind)}
	}

	var item domain.MediaItem
	if err := m.c.postMultipart(ctx, areaMedia, path, token, "file", up, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
