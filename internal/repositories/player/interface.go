package player

import (
	"context"

	"github.com/KirkDiggler/pongbot/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pongbot/internal/repositories/player Repository

// Repository defines the interface for player record persistence
type Repository interface {
	// CreatePlayer persists a new player; fails if the name is taken
	CreatePlayer(ctx context.Context, input *CreatePlayerInput) error

	// GetPlayer retrieves a player by name
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// SavePlayer persists an existing player
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// ListPlayers retrieves every player on the roster
	ListPlayers(ctx context.Context) (*ListPlayersOutput, error)

	// SetCurrentChallenge writes a player's current challenge slot,
	// conditional on the previously observed value
	SetCurrentChallenge(ctx context.Context, input *SetCurrentChallengeInput) error
}
