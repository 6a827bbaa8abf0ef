package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// envelope mirrors the API's response wrapper. Data stays raw so callers can
// decode it into whatever shape the endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// codeTokenExpired marks an expired access token in the error envelope.
// It is the only failure that triggers the refresh path instead of a retry.
const codeTokenExpired = "TOKEN_EXPIRED"

// APIError is a non-2xx reply from the backend.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Gateway issues authenticated requests against the REST backend with
// bounded retries and transparent access-token refresh.
//
// Every failed attempt is retried with linear backoff (attempt × RetryDelay)
// up to RetryAttempts, except an expired access token: that path refreshes
// the token once and replays the request, and if the refresh itself fails
// the session is cleared and ErrSessionExpired returned.
type Gateway struct {
	baseURL       string
	http          *http.Client
	tokens        TokenStore
	retryAttempts int
	retryDelay    time.Duration
	log           zerolog.Logger
}

func NewGateway(cfg Config, tokens TokenStore, log zerolog.Logger) *Gateway {
	cfg = cfg.withDefaults()
	return &Gateway{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          &http.Client{Timeout: cfg.Timeout},
		tokens:        tokens,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		log:           log,
	}
}

// Request performs method path with an optional JSON body and returns the
// envelope's data payload.
func (g *Gateway) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var lastErr error
	refreshed := false

	for attempt := 1; attempt <= g.retryAttempts; attempt++ {
		data, err := g.do(ctx, method, path, body, g.tokens.AccessToken())
		if err == nil {
			return data, nil
		}

		if apiErr, ok := err.(*APIError); ok && apiErr.Code == codeTokenExpired {
			if refreshed {
				g.tokens.Clear()
				return nil, ErrSessionExpired
			}
			refreshed = true
			if refreshErr := g.refresh(ctx); refreshErr != nil {
				g.tokens.Clear()
				return nil, ErrSessionExpired
			}
			// Replay immediately with the fresh token; does not consume
			// a retry attempt.
			attempt--
			continue
		}

		lastErr = err
		g.log.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt).
			Msg("request failed")

		if attempt < g.retryAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * g.retryDelay):
			}
		}
	}

	return nil, lastErr
}

func (g *Gateway) do(ctx context.Context, method, path string, body any, accessToken string) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body (proxy error page, etc.) is treated as a plain
		// HTTP failure below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (len(raw) > 0 && !env.Success && env.Message != "") {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: env.Message,
			Code:    env.Code,
		}
	}

	return env.Data, nil
}

// refresh exchanges the stored refresh token for a new access token.
func (g *Gateway) refresh(ctx context.Context) error {
	refreshToken := g.tokens.RefreshToken()
	if refreshToken == "" {
		return ErrSessionExpired
	}

	data, err := g.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{
		"refreshToken": refreshToken,
	}, "")
	if err != nil {
		return err
	}

	var reply struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		return err
	}
	if reply.AccessToken == "" {
		return ErrSessionExpired
	}

	g.tokens.SetAccess(reply.AccessToken)
	g.log.Debug().Msg("access token refreshed")
	return nil
}
