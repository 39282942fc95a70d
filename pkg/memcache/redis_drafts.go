package mem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/utils"
)

const draftKeyPrefix = "planner:draft:"

type RedisDrafts struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDrafts(client *redis.Client, ttl time.Duration) *RedisDrafts {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisDrafts{client: client, ttl: ttl}
}

func draftKey(id string) string { return draftKeyPrefix + id }

func (s *RedisDrafts) Save(ctx context.Context, id string, it *response_models.GeneratedItinerary) error {
	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisDrafts) Get(ctx context.Context, id string) (*response_models.GeneratedItinerary, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	return decodeDraft(data, err)
}

func (s *RedisDrafts) Consume(ctx context.Context, id string) (*response_models.GeneratedItinerary, error) {
	data, err := s.client.GetDel(ctx, draftKey(id)).Bytes()
	return decodeDraft(data, err)
}

func decodeDraft(data []byte, err error) (*response_models.GeneratedItinerary, error) {
	if errors.Is(err, redis.Nil) {
		return nil, utils.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	var it response_models.GeneratedItinerary
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &it, nil
}
