package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/api/middleware"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type stubRoster struct {
	listFn func(ctx context.Context, token, queryKey string, q ports.ListActorsQuery) (domain.ActorPage, error)
}

func (s *stubRoster) List(ctx context.Context, token, queryKey string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	return s.listFn(ctx, token, queryKey, q)
}

func (s *stubRoster) ListUnassigned(ctx context.Context, token, queryKey string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	return s.listFn(ctx, token, queryKey, q)
}

type stubActors struct {
	ports.ActorClient
	getFn    func(ctx context.Context, token, actorID string) (*domain.Actor, error)
	createFn func(ctx context.Context, token string, in ports.ActorInput) (*domain.Actor, error)
}

func (s *stubActors) Get(ctx context.Context, token, actorID string) (*domain.Actor, error) {
	return s.getFn(ctx, token, actorID)
}

func (s *stubActors) Create(ctx context.Context, token string, in ports.ActorInput) (*domain.Actor, error) {
	return s.createFn(ctx, token, in)
}

func withSession(c echo.Context, role domain.Role) {
	c.Set(middleware.ContextSession, &domain.Session{
		ID:    "sid-1",
		Token: "bearer-1",
		User:  &domain.UserProfile{Username: "marta", Role: role},
	})
}

func TestActorHandler_List(t *testing.T) {
	roster := &stubRoster{
		listFn: func(ctx context.Context, token, queryKey string, q ports.ListActorsQuery) (domain.ActorPage, error) {
			if token != "bearer-1" {
				t.Fatalf("upstream token not forwarded, got %q", token)
			}
			if queryKey == "" {
				t.Fatal("query key missing")
			}
			if q.Name != "liu" || q.Page != 2 || len(q.TagIDs) != 2 {
				t.Fatalf("filters not parsed: %+v", q)
			}
			return domain.ActorPage{
				Items: []domain.Actor{{ID: "a1", RealName: "Liu Yang", Tags: []domain.Tag{}}},
				Total: 41,
			}, nil
		},
	}
	h := NewActorHandler(roster, &stubActors{})

	c, rec := newTestContext(t, http.MethodGet, "/actors?name=liu&page=2&page_size=20&tag_ids=3,7", "")
	withSession(c, domain.RoleManager)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp actorPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 41 || len(resp.Items) != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestActorHandler_List_SupersededSurfaces(t *testing.T) {
	roster := &stubRoster{
		listFn: func(context.Context, string, string, ports.ListActorsQuery) (domain.ActorPage, error) {
			return domain.ActorPage{}, domain.ErrQuerySuperseded
		},
	}
	h := NewActorHandler(roster, &stubActors{})

	c, _ := newTestContext(t, http.MethodGet, "/actors", "")
	withSession(c, domain.RoleManager)
	if err := h.List(c); err != domain.ErrQuerySuperseded {
		t.Fatalf("expected ErrQuerySuperseded to pass to the error handler, got %v", err)
	}
}

func TestActorHandler_Get(t *testing.T) {
	actors := &stubActors{
		getFn: func(ctx context.Context, token, actorID string) (*domain.Actor, error) {
			if actorID != "a9" {
				t.Fatalf("unexpected actor id %q", actorID)
			}
			return &domain.Actor{ID: "a9", RealName: "Chen Wei"}, nil
		},
	}
	h := NewActorHandler(&stubRoster{}, actors)

	c, rec := newTestContext(t, http.MethodGet, "/actors/a9", "")
	c.SetParamNames("id")
	c.SetParamValues("a9")
	withSession(c, domain.RolePerformer)
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestActorHandler_Create_ValidatesInput(t *testing.T) {
	actors := &stubActors{
		createFn: func(context.Context, string, ports.ActorInput) (*domain.Actor, error) {
			t.Fatal("upstream must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewActorHandler(&stubRoster{}, actors)

	c, _ := newTestContext(t, http.MethodPost, "/actors", `{"stage_name":"no real name"}`)
	withSession(c, domain.RoleManager)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestActorHandler_Create_Success(t *testing.T) {
	actors := &stubActors{
		createFn: func(ctx context.Context, token string, in ports.ActorInput) (*domain.Actor, error) {
			if in.RealName != "Chen Wei" || in.HeightCm != 180 {
				t.Fatalf("input not mapped: %+v", in)
			}
			return &domain.Actor{ID: "a10", RealName: in.RealName}, nil
		},
	}
	h := NewActorHandler(&stubRoster{}, actors)

	c, rec := newTestContext(t, http.MethodPost, "/actors", `{"real_name":"Chen Wei","gender":"male","height":180}`)
	withSession(c, domain.RoleManager)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestActorHandler_AnonymousRejected(t *testing.T) {
	h := NewActorHandler(&stubRoster{}, &stubActors{})

	c, _ := newTestContext(t, http.MethodGet, "/actors", "")
	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
