package store

import (
	"context"
	"encoding/json"
	"errors"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/backoffice/internal/history/domain"
)

const keyPrefix = "client_history:"

// redisStore keeps one JSON document per client email. SET/GET/DEL on the
// unique key give the upsert and delete-by-key semantics the projection
// needs.
type redisStore struct {
	client *redis.Client
}

func Provide(client *redis.Client) domain.Store {
	return &redisStore{client: client}
}

func (s *redisStore) Upsert(ctx context.Context, doc *domain.ClientHistory) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+doc.ClientEmail, payload, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, keyPrefix+email).Err()
}

func (s *redisStore) Get(ctx context.Context, email string) (*domain.ClientHistory, error) {
	payload, err := s.client.Get(ctx, keyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc domain.ClientHistory
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
