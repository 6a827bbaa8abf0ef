package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testGateway(t *testing.T, baseURL string) (*Gateway, *MemoryTokenStore) {
	t.Helper()
	tokens := NewMemoryTokenStore()
	gw := NewGateway(Config{
		BaseURL:       baseURL,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}, tokens, zerolog.Nop())
	return gw, tokens
}

func TestGateway_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer access-1" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"id":"plot_1"}}`))
	}))
	defer srv.Close()

	gw, tokens := testGateway(t, srv.URL)
	tokens.SetPair("access-1", "refresh-1")

	data, err := gw.Request(context.Background(), http.MethodGet, "/plots", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if string(data) != `{"id":"plot_1"}` {
		t.Fatalf("unexpected data %s", data)
	}
}

func TestGateway_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"boom"}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	gw, _ := testGateway(t, srv.URL)

	if _, err := gw.Request(context.Background(), http.MethodGet, "/plots", nil); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestGateway_ExhaustedRetriesReturnLastError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success":false,"message":"upstream down"}`))
	}))
	defer srv.Close()

	gw, _ := testGateway(t, srv.URL)

	_, err := gw.Request(context.Background(), http.MethodGet, "/plots", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("expected 502 APIError, got %v", err)
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestGateway_RefreshesExpiredToken(t *testing.T) {
	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshes.Add(1)
			w.Write([]byte(`{"success":true,"data":{"accessToken":"access-2"}}`))
		case "/plots":
			if r.Header.Get("Authorization") == "Bearer access-2" {
				w.Write([]byte(`{"success":true,"data":[{"id":"plot_1"}]}`))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"token expired","code":"TOKEN_EXPIRED"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	gw, tokens := testGateway(t, srv.URL)
	tokens.SetPair("stale", "refresh-1")

	data, err := gw.Request(context.Background(), http.MethodGet, "/plots", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if string(data) != `[{"id":"plot_1"}]` {
		t.Fatalf("unexpected data %s", data)
	}
	if got := refreshes.Load(); got != 1 {
		t.Fatalf("expected 1 refresh, got %d", got)
	}
	if tokens.AccessToken() != "access-2" {
		t.Fatalf("refreshed access token not stored")
	}
}

func TestGateway_FailedRefreshEndsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"invalid refresh token"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"token expired","code":"TOKEN_EXPIRED"}`))
		}
	}))
	defer srv.Close()

	gw, tokens := testGateway(t, srv.URL)
	tokens.SetPair("stale", "refresh-1")

	_, err := gw.Request(context.Background(), http.MethodGet, "/plots", nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if tokens.AccessToken() != "" || tokens.RefreshToken() != "" {
		t.Fatalf("tokens not cleared")
	}
}

func TestGateway_RefreshHappensAtMostOnce(t *testing.T) {
	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshes.Add(1)
			w.Write([]byte(`{"success":true,"data":{"accessToken":"access-2"}}`))
		default:
			// The backend keeps rejecting even the fresh token.
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"token expired","code":"TOKEN_EXPIRED"}`))
		}
	}))
	defer srv.Close()

	gw, tokens := testGateway(t, srv.URL)
	tokens.SetPair("stale", "refresh-1")

	_, err := gw.Request(context.Background(), http.MethodGet, "/plots", nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if got := refreshes.Load(); got != 1 {
		t.Fatalf("expected exactly 1 refresh, got %d", got)
	}
}

func TestGateway_NoRefreshWithoutRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			t.Errorf("refresh attempted without a refresh token")
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired","code":"TOKEN_EXPIRED"}`))
	}))
	defer srv.Close()

	gw, tokens := testGateway(t, srv.URL)
	tokens.SetAccess("stale")

	_, err := gw.Request(context.Background(), http.MethodGet, "/plots", nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
