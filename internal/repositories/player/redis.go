package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/pongbot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	playerKeyPrefix = "player:"
	rosterKey       = "players"
)

// ErrPlayerNotFound is returned when a player is not found
var ErrPlayerNotFound = errors.New("player not found")

// ErrPlayerExists is returned on a unique-key violation when creating a player
var ErrPlayerExists = errors.New("player already exists")

// ErrChallengeMismatch is returned when a conditional challenge-slot
// update observes a value other than the expected one
var ErrChallengeMismatch = errors.New("current challenge changed concurrently")

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
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

// CreatePlayer persists a new player to Redis. The player key is
// written with SETNX so a concurrent registration of the same name
// surfaces as ErrPlayerExists.
func (r *redisRepository) CreatePlayer(ctx context.Context, input *CreatePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	player := input.Player
	if player.Name == "" {
		return errors.New("player name cannot be empty")
	}

	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	playerKey := playerKeyPrefix + player.Name
	created, err := r.client.SetNX(ctx, playerKey, playerJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	if !created {
		return ErrPlayerExists
	}

	if err := r.client.SAdd(ctx, rosterKey, player.Name).Err(); err != nil {
		return fmt.Errorf("failed to add player to roster: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player by name from Redis
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	playerKey := playerKeyPrefix + input.Name
	playerJSON, err := r.client.Get(ctx, playerKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var player models.Player
	if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &player, nil
}

// SavePlayer persists an existing player to Redis
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	player := input.Player
	if player.Name == "" {
		return errors.New("player name cannot be empty")
	}

	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	pipe := r.client.Pipeline()
	playerKey := playerKeyPrefix + player.Name
	pipe.Set(ctx, playerKey, playerJSON, 0)
	pipe.SAdd(ctx, rosterKey, player.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// ListPlayers retrieves every player on the roster from Redis,
// ordered by name for deterministic output.
func (r *redisRepository) ListPlayers(ctx context.Context) (*ListPlayersOutput, error) {
	names, err := r.client.SMembers(ctx, rosterKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	if len(names) == 0 {
		return &ListPlayersOutput{
			Players: []*models.Player{},
		}, nil
	}

	sort.Strings(names)

	pipe := r.client.Pipeline()
	playerCommands := make([]*redis.StringCmd, len(names))
	for i, name := range names {
		playerCommands[i] = pipe.Get(ctx, playerKeyPrefix+name)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	players := make([]*models.Player, 0, len(names))
	for i, cmd := range playerCommands {
		playerJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// roster entry without a record, skip it
				continue
			}
			return nil, fmt.Errorf("failed to get player %s: %w", names[i], err)
		}

		var player models.Player
		if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", names[i], err)
		}

		players = append(players, &player)
	}

	return &ListPlayersOutput{
		Players: players,
	}, nil
}

// SetCurrentChallenge performs a compare-and-set on a player's
// CurrentChallengeID. The read and write run under WATCH so two
// concurrent proposals against the same player cannot both pass the
// conflict check.
func (r *redisRepository) SetCurrentChallenge(ctx context.Context, input *SetCurrentChallengeInput) error {
	if input == nil || input.Name == "" {
		return errors.New("input and player name cannot be empty")
	}

	playerKey := playerKeyPrefix + input.Name

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		playerJSON, err := tx.Get(ctx, playerKey).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("failed to get player: %w", err)
		}

		var player models.Player
		if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
			return fmt.Errorf("failed to unmarshal player: %w", err)
		}

		if player.CurrentChallengeID != input.ExpectedChallengeID {
			return ErrChallengeMismatch
		}

		player.CurrentChallengeID = input.ChallengeID
		updatedJSON, err := json.Marshal(&player)
		if err != nil {
			return fmt.Errorf("failed to marshal player: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, playerKey, updatedJSON, 0)
			return nil
		})
		return err
	}, playerKey)

	if err == redis.TxFailedErr {
		// the record moved under us; the caller re-reads and re-checks
		return ErrChallengeMismatch
	}

	return err
}
