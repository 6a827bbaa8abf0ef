package api

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewRouter_RouteTable(t *testing.T) {
	e := NewRouter(Services{}, nil, nil, "secret", zerolog.Nop())

	registered := make(map[string]bool)
	for _, route := range e.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		http.MethodPost + " /api/auth/register",
		http.MethodPost + " /api/auth/login",
		http.MethodPost + " /api/auth/refresh",
		http.MethodPost + " /api/auth/logout",
		http.MethodGet + " /api/auth/me",
		http.MethodPost + " /api/plots",
		http.MethodPut + " /api/plots/:id",
		http.MethodPost + " /api/quotes/requests",
		http.MethodGet + " /api/quotes/requests",
		http.MethodPut + " /api/quotes/requests/:id/cancel",
		http.MethodPost + " /api/quotes",
		http.MethodPut + " /api/quotes/:id/accept",
		http.MethodPut + " /api/quotes/:id/reject",
		http.MethodGet + " /api/users/builders",
		http.MethodPut + " /api/users/profile",
		http.MethodPost + " /api/contact",
		http.MethodPost + " /api/advisor/budget",
		http.MethodGet + " /health",
		http.MethodGet + " /metrics",
	}
	for _, r := range want {
		if !registered[r] {
			t.Errorf("route not registered: %s", r)
		}
	}

	// Decisions and cancellation are transitions on an existing resource,
	// not creations: they must not answer on POST.
	for _, r := range []string{
		http.MethodPost + " /api/quotes/:id/accept",
		http.MethodPost + " /api/quotes/:id/reject",
		http.MethodPost + " /api/quotes/requests/:id/cancel",
	} {
		if registered[r] {
			t.Errorf("unexpected route: %s", r)
		}
	}
}
