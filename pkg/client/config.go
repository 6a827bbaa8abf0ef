// Package client is the data-access SDK for the plot marketplace. It speaks
// to the REST backend when one is configured and reachable, and falls back to
// an embedded bbolt store so the application keeps working offline. Callers
// program against the Store interface and never branch on the active mode.
package client

import "time"

const (
	defaultTimeout       = 10 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
	defaultLocalPath     = "marketplace.db"
)

// Config controls how the SDK connects and degrades.
type Config struct {
	// BaseURL is the backend API root, e.g. "http://localhost:8080/api".
	// Empty disables backend mode entirely.
	BaseURL string
	// Timeout bounds each HTTP attempt. Defaults to 10s.
	Timeout time.Duration
	// RetryAttempts is the number of tries per request. Defaults to 3.
	RetryAttempts int
	// RetryDelay is the base backoff; attempt n waits n × RetryDelay.
	// Defaults to 1s.
	RetryDelay time.Duration
	// UseLocalFallback keeps the app usable by replaying failed backend
	// calls against the local store.
	UseLocalFallback bool
	// LocalPath is the bbolt database file used in local mode and as the
	// fallback target. Defaults to "marketplace.db".
	LocalPath string
}

// ShouldUseBackend reports whether the SDK should talk to the REST backend.
func (c Config) ShouldUseBackend() bool {
	return c.BaseURL != ""
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.LocalPath == "" {
		c.LocalPath = defaultLocalPath
	}
	return c
}
