package client

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// FallbackStore decorates a remote Store with a local one. Every operation
// is tried against the backend first; when the backend fails for reasons
// other than the caller's own doing (not-found, expired session), the same
// operation is replayed against the local store so the app stays usable
// offline. Operations the backend does not expose go straight to local.
type FallbackStore struct {
	remote Store
	local  Store
	log    zerolog.Logger
}

func NewFallbackStore(remote, local Store, log zerolog.Logger) *FallbackStore {
	return &FallbackStore{remote: remote, local: local, log: log}
}

// shouldFallBack reports whether a remote failure warrants the local replay.
func shouldFallBack(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSessionExpired) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		// The backend answered: 4xx is the caller's problem, only server
		// failures trigger the fallback.
		return apiErr.Status >= 500
	}
	return true
}

func (s *FallbackStore) GetAll(ctx context.Context, table string) ([]Record, error) {
	records, err := s.remote.GetAll(ctx, table)
	if err != nil && shouldFallBack(err) {
		s.logFallback("GetAll", table, err)
		return s.local.GetAll(ctx, table)
	}
	return records, err
}

func (s *FallbackStore) GetByID(ctx context.Context, table, id string) (Record, error) {
	record, err := s.remote.GetByID(ctx, table, id)
	if err != nil && shouldFallBack(err) {
		s.logFallback("GetByID", table, err)
		return s.local.GetByID(ctx, table, id)
	}
	return record, err
}

func (s *FallbackStore) GetOneByField(ctx context.Context, table, field string, value any) (Record, error) {
	record, err := s.remote.GetOneByField(ctx, table, field, value)
	if err != nil && shouldFallBack(err) {
		s.logFallback("GetOneByField", table, err)
		return s.local.GetOneByField(ctx, table, field, value)
	}
	return record, err
}

func (s *FallbackStore) Query(ctx context.Context, table string, filters Record) ([]Record, error) {
	records, err := s.remote.Query(ctx, table, filters)
	if err != nil && shouldFallBack(err) {
		s.logFallback("Query", table, err)
		return s.local.Query(ctx, table, filters)
	}
	return records, err
}

func (s *FallbackStore) Insert(ctx context.Context, table string, data Record) (Record, error) {
	record, err := s.remote.Insert(ctx, table, data)
	if err != nil && shouldFallBack(err) {
		s.logFallback("Insert", table, err)
		return s.local.Insert(ctx, table, data)
	}
	return record, err
}

func (s *FallbackStore) Update(ctx context.Context, table, id string, data Record) (Record, error) {
	record, err := s.remote.Update(ctx, table, id, data)
	if err != nil && shouldFallBack(err) {
		s.logFallback("Update", table, err)
		return s.local.Update(ctx, table, id, data)
	}
	return record, err
}

func (s *FallbackStore) Delete(ctx context.Context, table, id string) error {
	err := s.remote.Delete(ctx, table, id)
	if err != nil && shouldFallBack(err) {
		s.logFallback("Delete", table, err)
		return s.local.Delete(ctx, table, id)
	}
	return err
}

func (s *FallbackStore) logFallback(op, table string, err error) {
	s.log.Warn().Err(err).
		Str("op", op).
		Str("table", table).
		Msg("backend unavailable, using local store")
}

// NewStore assembles the Store for the given configuration:
//   - backend disabled: the local store alone
//   - backend enabled, fallback on: FallbackStore over remote and local
//   - backend enabled, fallback off: the remote store alone
func NewStore(cfg Config, gw *Gateway, local *LocalStore, log zerolog.Logger) Store {
	if !cfg.ShouldUseBackend() {
		return local
	}
	remote := NewRemoteStore(gw)
	if cfg.UseLocalFallback {
		return NewFallbackStore(remote, local, log)
	}
	return remote
}
