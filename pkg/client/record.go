package client

import "errors"

var (
	// ErrNotFound is returned when no record matches the given id or field.
	ErrNotFound = errors.New("record not found")
	// ErrSessionExpired is returned when the access token expired and the
	// refresh attempt failed too. The caller must log in again.
	ErrSessionExpired = errors.New("session expired")
)

// Record is a schemaless row as exchanged with both backends. Keys follow
// the API's JSON field names.
type Record map[string]any

// ID returns the record's identifier, normalising Mongo's "_id" to "id".
func (r Record) ID() string {
	if id, ok := r["id"].(string); ok && id != "" {
		return id
	}
	if id, ok := r["_id"].(string); ok {
		return id
	}
	return ""
}

// normalizeID rewrites "_id" to "id" in place so callers see one spelling
// regardless of which backend produced the record.
func (r Record) normalizeID() Record {
	if r == nil {
		return r
	}
	if id, ok := r["_id"]; ok {
		if _, has := r["id"]; !has {
			r["id"] = id
		}
		delete(r, "_id")
	}
	return r
}

func normalizeAll(records []Record) []Record {
	for _, r := range records {
		r.normalizeID()
	}
	return records
}

// clone returns a shallow copy so stores never alias caller-owned maps.
func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
