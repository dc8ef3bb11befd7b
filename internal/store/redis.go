package store

import (
	"context"
	"encoding/json"
	"fmt"

	"leadflow_backend/internal/leads/domain"

	"github.com/redis/go-redis/v9"
)

const (
	leadKeyPrefix    = "lead:"
	profileKeyPrefix = "profile:"
)

// RedisStore is a Redis-backed LeadStore, selected when REDIS_URL is set.
// Records are stored as JSON values without expiry; lifecycle still follows
// the last-write-wins upsert contract.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using the given URL and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used in tests.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// UpsertLead stores the lead, replacing any prior record for the same email.
func (s *RedisStore) UpsertLead(ctx context.Context, lead *domain.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}
	return s.client.Set(ctx, leadKeyPrefix+domain.NormalizeEmail(lead.Email), data, 0).Err()
}

// GetLead returns the stored lead for the email, or ErrNotFound.
func (s *RedisStore) GetLead(ctx context.Context, email string) (*domain.Lead, error) {
	data, err := s.client.Get(ctx, leadKeyPrefix+domain.NormalizeEmail(email)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var lead domain.Lead
	if err := json.Unmarshal(data, &lead); err != nil {
		return nil, fmt.Errorf("unmarshal lead: %w", err)
	}
	return &lead, nil
}

// ListLeads scans all lead keys and returns the decoded records.
func (s *RedisStore) ListLeads(ctx context.Context) ([]*domain.Lead, error) {
	var out []*domain.Lead

	iter := s.client.Scan(ctx, 0, leadKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var lead domain.Lead
		if err := json.Unmarshal(data, &lead); err != nil {
			return nil, fmt.Errorf("unmarshal lead %s: %w", iter.Val(), err)
		}
		out = append(out, &lead)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// SaveProfile attaches an enrichment profile to the lead's email key.
func (s *RedisStore) SaveProfile(ctx context.Context, profile *domain.EnrichedProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.client.Set(ctx, profileKeyPrefix+domain.NormalizeEmail(profile.Email), data, 0).Err()
}

// GetProfile returns the enrichment profile for the email, or ErrNotFound.
func (s *RedisStore) GetProfile(ctx context.Context, email string) (*domain.EnrichedProfile, error) {
	data, err := s.client.Get(ctx, profileKeyPrefix+domain.NormalizeEmail(email)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var profile domain.EnrichedProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, nil
}

// Compile-time check that RedisStore implements LeadStore
var _ LeadStore = (*RedisStore)(nil)
