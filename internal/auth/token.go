// Package auth issues and parses the gateway's own browser-facing session
// tokens. These are distinct from the upstream bearer token, which never
// leaves the session store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the decoded content of a gateway session token.
type Claims struct {
	SessionID string
	Username  string
	Role      domain.Role
}

// TokenManager signs and verifies gateway session tokens (HS256).
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given session.
func (m *TokenManager) Issue(s *domain.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":      s.ID,
		"username": s.User.Username,
		"role":     string(s.User.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Parse verifies the signature and expiry and extracts the claims.
func (m *TokenManager) Parse(raw string) (*Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &Claims{SessionID: sid, Username: username, Role: domain.Role(role)}, nil
}
