package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrUnsupported is returned for table operations the backend does not
// expose, e.g. listing contact messages.
var ErrUnsupported = errors.New("operation not supported by the backend")

// remoteResource maps a logical table name onto the backend's REST surface.
type remoteResource struct {
	// base is the resource path under the API root.
	base string
	// listKey unwraps list replies of the form {"<key>": [...]} instead of
	// a bare array.
	listKey string
	// readOnly resources reject Insert/Update/Delete.
	readOnly bool
	// writeOnly resources reject reads (fire-and-forget endpoints).
	writeOnly bool
}

var remoteTables = map[string]remoteResource{
	"plots":            {base: "/plots"},
	"quote_requests":   {base: "/quotes/requests"},
	"quotes":           {base: "/quotes"},
	"contact_messages": {base: "/contact", writeOnly: true},
	"users":            {base: "/users/builders", listKey: "builders", readOnly: true},
	"budget_analyses":  {base: "/advisor/history", readOnly: true},
}

// RemoteStore implements Store against the REST backend via the Gateway.
type RemoteStore struct {
	gw *Gateway
}

func NewRemoteStore(gw *Gateway) *RemoteStore {
	return &RemoteStore{gw: gw}
}

func resource(table string) (remoteResource, error) {
	res, ok := remoteTables[table]
	if !ok {
		return remoteResource{}, fmt.Errorf("%w: unknown table %q", ErrUnsupported, table)
	}
	return res, nil
}

func (s *RemoteStore) GetAll(ctx context.Context, table string) ([]Record, error) {
	res, err := resource(table)
	if err != nil {
		return nil, err
	}
	if res.writeOnly {
		return nil, ErrUnsupported
	}
	return s.list(ctx, res, res.base)
}

func (s *RemoteStore) GetByID(ctx context.Context, table, id string) (Record, error) {
	res, err := resource(table)
	if err != nil {
		return nil, err
	}
	if res.writeOnly {
		return nil, ErrUnsupported
	}

	data, err := s.gw.Request(ctx, http.MethodGet, res.base+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return decodeRecord(data)
}

func (s *RemoteStore) GetOneByField(ctx context.Context, table, field string, value any) (Record, error) {
	records, err := s.Query(ctx, table, Record{field: value})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Query sends every filter as a query parameter so endpoints that support
// server-side filtering (e.g. ?status= on quote requests) can narrow the
// reply; any residual mismatch is filtered here, so the result is always the
// exact-match conjunction of all filters.
func (s *RemoteStore) Query(ctx context.Context, table string, filters Record) ([]Record, error) {
	res, err := resource(table)
	if err != nil {
		return nil, err
	}
	if res.writeOnly {
		return nil, ErrUnsupported
	}

	path := res.base
	if len(filters) > 0 {
		params := url.Values{}
		for field, value := range filters {
			params.Set(field, fmt.Sprint(value))
		}
		path += "?" + params.Encode()
	}
	records, err := s.list(ctx, res, path)
	if err != nil {
		return nil, err
	}

	matched := records[:0]
	for _, r := range records {
		if matchFilters(r, filters) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *RemoteStore) Insert(ctx context.Context, table string, data Record) (Record, error) {
	res, err := resource(table)
	if err != nil {
		return nil, err
	}
	if res.readOnly {
		return nil, ErrUnsupported
	}

	reply, err := s.gw.Request(ctx, http.MethodPost, res.base, data)
	if err != nil {
		return nil, err
	}
	return decodeRecord(reply)
}

func (s *RemoteStore) Update(ctx context.Context, table, id string, data Record) (Record, error) {
	res, err := resource(table)
	if err != nil {
		return nil, err
	}
	if res.readOnly || res.writeOnly {
		return nil, ErrUnsupported
	}

	reply, err := s.gw.Request(ctx, http.MethodPut, res.base+"/"+url.PathEscape(id), data)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return decodeRecord(reply)
}

func (s *RemoteStore) Delete(ctx context.Context, table, id string) error {
	res, err := resource(table)
	if err != nil {
		return err
	}
	if res.readOnly || res.writeOnly {
		return ErrUnsupported
	}

	_, err = s.gw.Request(ctx, http.MethodDelete, res.base+"/"+url.PathEscape(id), nil)
	return mapNotFound(err)
}

func (s *RemoteStore) list(ctx context.Context, res remoteResource, path string) ([]Record, error) {
	data, err := s.gw.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if res.listKey != "" {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, err
		}
		data = wrapper[res.listKey]
	}

	var records []Record
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	}
	return normalizeAll(records), nil
}

func decodeRecord(data json.RawMessage) (Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record.normalizeID(), nil
}

func mapNotFound(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}
