package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-interview-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// Drafts left untouched for a day are discarded.
const wizardTTL = 24 * time.Hour

type wizardStore struct {
	client *goredis.Client
}

// NewWizardStore creates a Redis-backed wizard store so in-flight vacancy
// drafts survive restarts and are shared across instances.
func NewWizardStore(client *goredis.Client) domain.WizardStore {
	return &wizardStore{client: client}
}

func key(actorID int64) string {
	return fmt.Sprintf("wizard:vacancy:%d", actorID)
}

func (s *wizardStore) Get(ctx context.Context, actorID int64) (*domain.WizardState, error) {
	data, err := s.client.Get(ctx, key(actorID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var state domain.WizardState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode wizard state: %w", err)
	}
	return &state, nil
}

func (s *wizardStore) Put(ctx context.Context, actorID int64, state *domain.WizardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode wizard state: %w", err)
	}
	return s.client.Set(ctx, key(actorID), data, wizardTTL).Err()
}

func (s *wizardStore) Delete(ctx context.Context, actorID int64) error {
	return s.client.Del(ctx, key(actorID)).Err()
}
