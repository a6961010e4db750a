package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/pongbot/internal/models"
	"github.com/redis/go-redis/v9"
)

const challengeKeyPrefix = "challenge:"

// ErrChallengeNotFound is returned when a challenge is not found
var ErrChallengeNotFound = errors.New("challenge not found")

// Config holds configuration for the Redis challenge repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed challenge repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveChallenge persists a challenge to Redis
func (r *redisRepository) SaveChallenge(ctx context.Context, input *SaveChallengeInput) error {
	if input == nil || input.Challenge == nil {
		return errors.New("input and challenge cannot be nil")
	}

	challenge := input.Challenge
	if challenge.ID == "" {
		return errors.New("challenge ID cannot be empty")
	}

	challengeJSON, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	challengeKey := challengeKeyPrefix + challenge.ID
	if err := r.client.Set(ctx, challengeKey, challengeJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save challenge: %w", err)
	}

	return nil
}

// GetChallenge retrieves a challenge by ID from Redis
func (r *redisRepository) GetChallenge(ctx context.Context, input *GetChallengeInput) (*models.Challenge, error) {
	if input == nil || input.ChallengeID == "" {
		return nil, errors.New("input and challenge ID cannot be empty")
	}

	challengeKey := challengeKeyPrefix + input.ChallengeID
	challengeJSON, err := r.client.Get(ctx, challengeKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	var challenge models.Challenge
	if err := json.Unmarshal([]byte(challengeJSON), &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	return &challenge, nil
}
