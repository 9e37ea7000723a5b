package api

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qiaoguanyu11/actorreal/internal/infrastructure/config"
)

// Registration-only check: no request is served, so the nil infrastructure
// clients are never touched.
func TestNewRouter_TagRoutesRegistered(t *testing.T) {
	e := NewRouter(Deps{
		Config: &config.Config{},
		Log:    zerolog.Nop(),
	})

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		http.MethodGet + " /tags",
		http.MethodPost + " /tags",
		http.MethodGet + " /tags/:id",
		http.MethodPut + " /tags/:id",
		http.MethodDelete + " /tags/:id",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %s not registered", route)
		}
	}
}
