package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"quiz-builder/internal/domain"
)

// Keys the two collections are stored under.
const (
	QuizzesKey  = "iqb_quizzes_v1"
	AttemptsKey = "iqb_attempts_v1"
)

// KV is the string key-value store the collections are serialized into.
type KV interface {
	// Get returns ok=false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Collections implements app.Repository over a KV, storing each collection
// as a JSON array. Missing or unparseable quiz data yields the sample quizzes;
// unparseable attempt data yields an empty history.
type Collections struct {
	kv   KV
	seed func() []domain.Quiz
}

// Option customizes Collections.
type Option func(*Collections)

// WithSeed replaces the first-run quiz collection.
func WithSeed(seed func() []domain.Quiz) Option {
	return func(c *Collections) { c.seed = seed }
}

func NewCollections(kv KV, opts ...Option) *Collections {
	c := &Collections{
		kv: kv,
		seed: func() []domain.Quiz {
			return domain.SampleQuizzes(domain.UUIDGenerator{}, time.Now())
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collections) LoadQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	raw, ok, err := c.kv.Get(ctx, QuizzesKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", QuizzesKey, err)
	}
	if !ok || raw == "" {
		return c.seed(), nil
	}
	var quizzes []domain.Quiz
	if err := json.Unmarshal([]byte(raw), &quizzes); err != nil || quizzes == nil {
		log.Printf("storage: %s is corrupt, seeding sample quizzes: %v", QuizzesKey, err)
		return c.seed(), nil
	}
	return quizzes, nil
}

func (c *Collections) SaveQuizzes(ctx context.Context, quizzes []domain.Quiz) error {
	return c.put(ctx, QuizzesKey, nonNil(quizzes))
}

func (c *Collections) LoadAttempts(ctx context.Context) ([]domain.Attempt, error) {
	raw, ok, err := c.kv.Get(ctx, AttemptsKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", AttemptsKey, err)
	}
	if !ok || raw == "" {
		return []domain.Attempt{}, nil
	}
	var attempts []domain.Attempt
	if err := json.Unmarshal([]byte(raw), &attempts); err != nil || attempts == nil {
		log.Printf("storage: %s is corrupt, starting with empty history: %v", AttemptsKey, err)
		return []domain.Attempt{}, nil
	}
	return attempts, nil
}

func (c *Collections) SaveAttempts(ctx context.Context, attempts []domain.Attempt) error {
	return c.put(ctx, AttemptsKey, nonNil(attempts))
}

func (c *Collections) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := c.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// nonNil keeps empty collections serialized as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
