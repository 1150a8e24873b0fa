// Package cache provides the two cache tiers of the context builder: bounded in-memory
// LRUs and a persistent sqlite store for static fragments.
package cache

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/jyotish/internal/utils"
)

// Store persists msgpack blobs in the static_contexts table with an expiry.
// Rows are keyed by the birth hash.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStore creates a store over an already-migrated database
func NewStore(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("component", "static_store").Logger(),
	}
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, out interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	dec.UseLooseInterfaceDecoding(true)
	return dec.Decode(out)
}

// Put saves v with expiration = now + ttl, replacing any previous value
func (s *Store) Put(key string, v interface{}, ttl time.Duration) error {
	data, err := encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	now := time.Now()
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO static_contexts (key, data, created_at, expires_at) VALUES (?, ?, ?, ?)",
		key, data, now.Unix(), now.Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// GetIfFresh decodes the value into out when it exists and has not expired
func (s *Store) GetIfFresh(key string, out interface{}) (bool, error) {
	var data []byte
	err := s.db.QueryRow(
		"SELECT data FROM static_contexts WHERE key = ? AND expires_at > ?",
		key, time.Now().Unix(),
	).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := decode(data, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Delete removes a specific entry
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM static_contexts WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// DeleteExpired removes all rows where expires_at <= now and returns the count
func (s *Store) DeleteExpired() (int64, error) {
	done := utils.MeasureDBQuery("static_contexts_delete_expired", s.log)

	result, err := s.db.Exec("DELETE FROM static_contexts WHERE expires_at <= ?", time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired static contexts: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	done(deleted)
	return deleted, nil
}

// Count returns the number of stored rows, expired ones included
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM static_contexts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count static contexts: %w", err)
	}
	return n, nil
}
