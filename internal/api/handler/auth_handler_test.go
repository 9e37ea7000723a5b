package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/qiaoguanyu11/actorreal/internal/api/middleware"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type stubSessionService struct {
	loginFn    func(ctx context.Context, username, password string) (string, *domain.Session, error)
	guestFn    func(ctx context.Context) (string, *domain.Session, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.Session, error)
	logoutFn   func(ctx context.Context, sid string) error
}

func (s *stubSessionService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubSessionService) GuestLogin(ctx context.Context) (string, *domain.Session, error) {
	return s.guestFn(ctx)
}

func (s *stubSessionService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.Session, error) {
	return s.registerFn(ctx, in)
}

func (s *stubSessionService) Logout(ctx context.Context, sid string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, sid)
	}
	return nil
}

func (s *stubSessionService) Resolve(ctx context.Context, sid string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessionService) Invalidate(ctx context.Context, sid string) error {
	return nil
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Session, error) {
			if username != "marta" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed-token", &domain.Session{
				ID:   "sid-1",
				User: &domain.UserProfile{Username: "marta", Role: domain.RoleManager},
			}, nil
		},
	}
	h := NewAuthHandler(stub, 3600)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"marta","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "marta" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "signed-token" {
		t.Fatalf("session cookie not set: %+v", cookies)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(context.Context, string, string) (string, *domain.Session, error) {
			t.Fatal("service must not be called on invalid input")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, 3600)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"marta"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_RejectsBadInviteCode(t *testing.T) {
	stub := &stubSessionService{
		registerFn: func(context.Context, ports.RegisterInput) (string, *domain.Session, error) {
			t.Fatal("service must not be called on invalid input")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, 3600)

	for _, code := range []string{"12345", "1234567", "abc123", ""} {
		body := `{"username":"nina","password":"secret1","invite_code":"` + code + `"}`
		c, _ := newTestContext(t, http.MethodPost, "/auth/register", body)
		err := h.Register(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("code %q: expected 400, got %v", code, err)
		}
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	var got ports.RegisterInput
	stub := &stubSessionService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.Session, error) {
			got = in
			return "signed", &domain.Session{
				ID:   "sid-2",
				User: &domain.UserProfile{Username: in.Username, Role: domain.RolePerformer},
			}, nil
		},
	}
	h := NewAuthHandler(stub, 3600)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"nina","password":"secret1","invite_code":"123456"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.InviteCode != "123456" {
		t.Fatalf("invite code not forwarded: %+v", got)
	}
}

func TestAuthHandler_GuestLogin(t *testing.T) {
	stub := &stubSessionService{
		guestFn: func(context.Context) (string, *domain.Session, error) {
			return "guest-token", &domain.Session{ID: "sid-g", User: domain.GuestProfile()}, nil
		},
	}
	h := NewAuthHandler(stub, 3600)

	c, rec := newTestContext(t, http.MethodPost, "/auth/guest", "")
	if err := h.GuestLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var clearedSID string
	stub := &stubSessionService{
		logoutFn: func(ctx context.Context, sid string) error {
			clearedSID = sid
			return nil
		},
	}
	h := NewAuthHandler(stub, 3600)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set(middleware.ContextSessionID, "sid-1")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if clearedSID != "sid-1" {
		t.Fatalf("expected sid-1 cleared, got %q", clearedSID)
	}

	var expired bool
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Fatal("session cookie not expired on logout")
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, 3600)

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set(middleware.ContextSession, &domain.Session{
		ID:   "sid-1",
		User: &domain.UserProfile{Username: "marta", Role: domain.RoleManager},
	})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if profile.Username != "marta" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestAuthHandler_Me_Anonymous(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, 3600)

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")
	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
