package middleware

import (
	"testing"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

func TestDecide_OpenRoute(t *testing.T) {
	in := GuardInput{Path: "/login"}
	if got := Decide(in); got != DecisionAllow {
		t.Fatalf("open routes never redirect, got %s", got)
	}
	// Even while the session is resolving.
	in.Resolving = true
	if got := Decide(in); got != DecisionAllow {
		t.Fatalf("open routes ignore session state, got %s", got)
	}
}

func TestDecide_ResolvingBeforeEverything(t *testing.T) {
	in := GuardInput{
		Resolving: true,
		Path:      "/actors",
		Required:  []domain.Role{domain.RoleManager},
	}
	if got := Decide(in); got != DecisionRetry {
		t.Fatalf("resolving session must yield retry, got %s", got)
	}
}

func TestDecide_UnauthenticatedGoesToLogin(t *testing.T) {
	in := GuardInput{
		Path:     "/actors",
		Required: []domain.Role{domain.RoleManager},
	}
	if got := Decide(in); got != DecisionLogin {
		t.Fatalf("expected login redirect, got %s", got)
	}
}

func TestDecide_GuestRequestingManagerRouteGoesHome(t *testing.T) {
	in := GuardInput{
		Authenticated: true,
		Guest:         true,
		Role:          domain.RoleGuest,
		Path:          "/actors",
		Required:      []domain.Role{domain.RoleManager},
	}
	if got := Decide(in); got != DecisionHome {
		t.Fatalf("expected home redirect, got %s", got)
	}
}

func TestDecide_GuestMayViewHome(t *testing.T) {
	in := GuardInput{
		Authenticated: true,
		Guest:         true,
		Role:          domain.RoleGuest,
		Path:          "/",
		Required:      []domain.Role{domain.RolePerformer},
	}
	if got := Decide(in); got != DecisionAllow {
		t.Fatalf("guests may view the home page read-only, got %s", got)
	}
}

func TestDecide_GuestRouteAcceptsGuests(t *testing.T) {
	in := GuardInput{
		Authenticated: true,
		Guest:         true,
		Role:          domain.RoleGuest,
		Path:          "/browse",
		Required:      []domain.Role{domain.RoleGuest, domain.RolePerformer},
	}
	if got := Decide(in); got != DecisionAllow {
		t.Fatalf("guest-listed routes admit guests, got %s", got)
	}
}

func TestDecide_RoleHierarchy(t *testing.T) {
	cases := []struct {
		name     string
		role     domain.Role
		required []domain.Role
		want     Decision
	}{
		{"admin satisfies manager", domain.RoleAdmin, []domain.Role{domain.RoleManager}, DecisionAllow},
		{"admin satisfies performer", domain.RoleAdmin, []domain.Role{domain.RolePerformer}, DecisionAllow},
		{"manager satisfies performer", domain.RoleManager, []domain.Role{domain.RolePerformer}, DecisionAllow},
		{"manager satisfies manager", domain.RoleManager, []domain.Role{domain.RoleManager}, DecisionAllow},
		{"performer cannot reach manager route", domain.RolePerformer, []domain.Role{domain.RoleManager}, DecisionHome},
		{"performer satisfies performer", domain.RolePerformer, []domain.Role{domain.RolePerformer}, DecisionAllow},
		{"any-of admits either role", domain.RolePerformer, []domain.Role{domain.RoleManager, domain.RolePerformer}, DecisionAllow},
		{"performer cannot reach admin route", domain.RolePerformer, []domain.Role{domain.RoleAdmin}, DecisionHome},
		{"manager cannot reach admin route", domain.RoleManager, []domain.Role{domain.RoleAdmin}, DecisionHome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := GuardInput{
				Authenticated: true,
				Role:          tc.role,
				Path:          "/whatever",
				Required:      tc.required,
			}
			if got := Decide(in); got != tc.want {
				t.Fatalf("role=%s required=%v: want %s, got %s", tc.role, tc.required, tc.want, got)
			}
		})
	}
}
