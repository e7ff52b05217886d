package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.HistoryStore using Redis.
// Each automaton's history is a list with the newest record at the head.
type Store struct {
	client     *backend.Client
	prefix     string
	ttl        time.Duration
	maxEntries int
}

type Option func(*Store)

// WithTTL sets the expiration of a history list, refreshed on every append.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for history lists.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithMaxEntries caps the records kept per automaton. Zero keeps everything.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		s.maxEntries = n
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "automata:history:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(automaton string) string {
	return s.prefix + automaton
}

// Append pushes the record to the head of the automaton's list.
func (s *Store) Append(ctx context.Context, rec domain.RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	key := s.key(rec.Automaton)
	pipe := s.client.TxPipeline()

	pipe.LPush(ctx, key, data)
	if s.maxEntries > 0 {
		pipe.LTrim(ctx, key, 0, int64(s.maxEntries-1))
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first.
func (s *Store) List(ctx context.Context, automaton string, limit int) ([]domain.RunRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	vals, err := s.client.LRange(ctx, s.key(automaton), 0, stop).Result()
	if err != nil && err != backend.Nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	recs := make([]domain.RunRecord, 0, len(vals))
	for _, v := range vals {
		var rec domain.RunRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Delete removes the automaton's history.
func (s *Store) Delete(ctx context.Context, automaton string) error {
	return s.client.Del(ctx, s.key(automaton)).Err()
}

// Ping checks connectivity, for health endpoints.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
