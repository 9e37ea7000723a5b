package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type stubTags struct {
	ports.TagClient
	getFn func(ctx context.Context, token string, tagID int) (*domain.Tag, error)
}

func (s *stubTags) Get(ctx context.Context, token string, tagID int) (*domain.Tag, error) {
	return s.getFn(ctx, token, tagID)
}

func TestTagHandler_Get(t *testing.T) {
	tags := &stubTags{
		getFn: func(ctx context.Context, token string, tagID int) (*domain.Tag, error) {
			if token != "bearer-1" {
				t.Fatalf("upstream token not forwarded, got %q", token)
			}
			if tagID != 12 {
				t.Fatalf("unexpected tag id %d", tagID)
			}
			return &domain.Tag{ID: 12, Name: "martial-arts"}, nil
		},
	}
	h := NewTagHandler(tags)

	c, rec := newTestContext(t, http.MethodGet, "/tags/12", "")
	c.SetParamNames("id")
	c.SetParamValues("12")
	withSession(c, domain.RoleManager)
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var tag domain.Tag
	if err := json.Unmarshal(rec.Body.Bytes(), &tag); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if tag.ID != 12 || tag.Name != "martial-arts" {
		t.Fatalf("unexpected tag: %+v", tag)
	}
}

func TestTagHandler_Get_InvalidID(t *testing.T) {
	tags := &stubTags{
		getFn: func(context.Context, string, int) (*domain.Tag, error) {
			t.Fatal("upstream must not be called for a bad id")
			return nil, nil
		},
	}
	h := NewTagHandler(tags)

	c, _ := newTestContext(t, http.MethodGet, "/tags/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	withSession(c, domain.RoleManager)
	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTagHandler_Get_NotFoundSurfaces(t *testing.T) {
	tags := &stubTags{
		getFn: func(context.Context, string, int) (*domain.Tag, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewTagHandler(tags)

	c, _ := newTestContext(t, http.MethodGet, "/tags/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	withSession(c, domain.RoleManager)
	if err := h.Get(c); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound to pass to the error handler, got %v", err)
	}
}
