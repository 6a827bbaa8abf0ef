package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"
)

var (
	bucketMeta = []byte("_meta")

	// Tables created up front. Unknown tables get a bucket on first write.
	knownTables = []string{
		"users",
		"customer_profiles",
		"builder_profiles",
		"plots",
		"quote_requests",
		"quotes",
		"contact_messages",
		"budget_analyses",
	}
)

const (
	metaInitialized = "db_initialized"
	// MetaCurrentUser is the meta key under which the active session is
	// persisted across restarts.
	MetaCurrentUser = "current_user"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newLocalID mints an offline record ID: id_<unix_ms>_<9 random chars>.
// The format survives a later sync because it can never collide with the
// backend's ObjectID-derived ids.
func newLocalID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("id_%d_%s", time.Now().UnixMilli(), suffix)
}

// LocalStore is the embedded bbolt implementation of Store. One bucket per
// table, values are JSON-encoded records keyed by id. A fresh database is
// seeded with two demo accounts so the app is usable out of the box.
type LocalStore struct {
	db  *bolt.DB
	log zerolog.Logger
}

// NewLocalStore opens (creating if needed) the bbolt file at path.
func NewLocalStore(path string, log zerolog.Logger) (*LocalStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		for _, table := range knownTables {
			if _, err := tx.CreateBucketIfNotExists([]byte(table)); err != nil {
				return fmt.Errorf("create bucket %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &LocalStore{db: db, log: log}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database file.
func (s *LocalStore) Close() error {
	return s.db.Close()
}

func (s *LocalStore) GetAll(ctx context.Context, table string) ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			records = append(records, r)
			return nil
		})
	})
	return normalizeAll(records), err
}

func (s *LocalStore) GetByID(ctx context.Context, table, id string) (Record, error) {
	var record Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return ErrNotFound
		}
		data := b.Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return record.normalizeID(), nil
}

func (s *LocalStore) GetOneByField(ctx context.Context, table, field string, value any) (Record, error) {
	records, err := s.Query(ctx, table, Record{field: value})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Query returns the records matching every filter field.
func (s *LocalStore) Query(ctx context.Context, table string, filters Record) ([]Record, error) {
	all, err := s.GetAll(ctx, table)
	if err != nil {
		return nil, err
	}
	var matched []Record
	for _, r := range all {
		if matchFilters(r, filters) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *LocalStore) Insert(ctx context.Context, table string, data Record) (Record, error) {
	record := data.clone()
	if record.ID() == "" {
		record["id"] = newLocalID()
	}
	record.normalizeID()
	now := time.Now().UTC().Format(time.RFC3339)
	record["created_at"] = now
	record["updated_at"] = now

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return err
		}
		payload, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put([]byte(record.ID()), payload)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *LocalStore) Update(ctx context.Context, table, id string, data Record) (Record, error) {
	var record Record
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return ErrNotFound
		}
		existing := b.Get([]byte(id))
		if existing == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(existing, &record); err != nil {
			return err
		}
		for k, v := range data {
			if k == "id" || k == "_id" {
				continue
			}
			record[k] = v
		}
		record["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		payload, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), payload)
	})
	if err != nil {
		return nil, err
	}
	return record.normalizeID(), nil
}

func (s *LocalStore) Delete(ctx context.Context, table, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil || b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

// GetMeta returns the meta value stored under key, or ErrNotFound.
func (s *LocalStore) GetMeta(key string) (Record, error) {
	var record Record
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// PutMeta stores a meta value under key.
func (s *LocalStore) PutMeta(key string, value Record) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		payload, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put([]byte(key), payload)
	})
}

// DeleteMeta removes the meta value under key. Idempotent.
func (s *LocalStore) DeleteMeta(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMeta).Delete([]byte(key))
	})
}

// seed populates a fresh database with one demo customer and one demo
// builder (password "password123" for both), then sets the initialization
// sentinel so it only ever runs once.
func (s *LocalStore) seed() error {
	if _, err := s.GetMeta(metaInitialized); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ctx := context.Background()

	customer, err := s.Insert(ctx, "users", Record{
		"email":        "customer@example.com",
		"passwordHash": string(hash),
		"role":         "customer",
		"firstName":    "Demo",
		"lastName":     "Customer",
		"isActive":     true,
	})
	if err != nil {
		return err
	}
	if _, err := s.Insert(ctx, "customer_profiles", Record{
		"user":  customer.ID(),
		"phone": "555-0100",
	}); err != nil {
		return err
	}

	builder, err := s.Insert(ctx, "users", Record{
		"email":        "builder@example.com",
		"passwordHash": string(hash),
		"role":         "builder",
		"firstName":    "Demo",
		"lastName":     "Builder",
		"isActive":     true,
	})
	if err != nil {
		return err
	}
	if _, err := s.Insert(ctx, "builder_profiles", Record{
		"user":              builder.ID(),
		"companyName":       "Demo Construction Co",
		"yearsOfExperience": 10,
		"specializations":   []string{"residential", "renovation"},
		"serviceAreas":      []string{"Springfield"},
	}); err != nil {
		return err
	}

	s.log.Info().Msg("local store seeded with demo accounts")
	return s.PutMeta(metaInitialized, Record{"at": time.Now().UTC().Format(time.RFC3339)})
}

// matchFilters reports whether r satisfies every filter field.
func matchFilters(r Record, filters Record) bool {
	for field, value := range filters {
		if !matchValue(r[field], value) {
			return false
		}
	}
	return true
}

// matchValue compares a stored value with a query value across the type
// drift JSON round-trips introduce (ints become float64, etc).
func matchValue(stored, query any) bool {
	if stored == nil {
		return query == nil
	}
	return fmt.Sprint(stored) == fmt.Sprint(query)
}
