package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

const areaAuth = "auth"

// Auth issues requests against the backend's auth and user-management
// sub-area.
type Auth struct {
	c *Client
}

func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type,omitempty"`
	User        *domain.UserProfile `json:"user,omitempty"`
}

// Login uses the JSON login endpoint. Some backend revisions return the
// profile inline; callers must be ready to fetch it separately when absent.
func (a *Auth) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	var resp loginResponse
	err := a.c.postJSON(ctx, areaAuth, a.c.cfg.AuthPrefix+"/login/json", "", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.LoginResult{AccessToken: resp.AccessToken, User: resp.User}, nil
}

func (a *Auth) Register(ctx context.Context, in ports.CreateUserInput) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := a.c.postJSON(ctx, areaAuth, a.c.cfg.AuthPrefix+"/register", "", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me is the "who am I" endpoint, and also the 401 re-validation probe.
func (a *Auth) Me(ctx context.Context, token string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := a.c.getJSON(ctx, areaAuth, a.c.cfg.AuthPrefix+"/users/me", nil, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *Auth) CreateManager(ctx context.Context, token string, in ports.CreateUserInput) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := a.c.postJSON(ctx, areaAuth, a.c.cfg.AuthPrefix+"/admin/create-manager", token, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *Auth) ListUsers(ctx context.Context, token string, page, pageSize int) ([]domain.UserProfile, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
		if pageSize <= 0 {
			pageSize = 10
		}
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	var users []domain.UserProfile
	if err := a.c.getJSON(ctx, areaAuth, a.c.cfg.UsersPrefix, query, token, &users); err != nil {
		return nil, err
	}
	return users, nil
}
