package client

import (
	"github.com/rs/zerolog"
)

// Client bundles the assembled SDK: the mode-agnostic Store, the session
// manager and the underlying local database.
type Client struct {
	Store Store
	Auth  *Auth

	local *LocalStore
}

// New assembles a Client for the given configuration. The local store is
// always opened: it backs local mode, the fallback path and session
// persistence.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	cfg = cfg.withDefaults()

	local, err := NewLocalStore(cfg.LocalPath, log)
	if err != nil {
		return nil, err
	}

	tokens := NewMemoryTokenStore()
	gw := NewGateway(cfg, tokens, log)

	return &Client{
		Store: NewStore(cfg, gw, local, log),
		Auth:  NewAuth(cfg, gw, tokens, local, log),
		local: local,
	}, nil
}

// Close releases the local database file.
func (c *Client) Close() error {
	return c.local.Close()
}
