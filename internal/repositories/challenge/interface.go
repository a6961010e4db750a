package challenge

import (
	"context"

	"github.com/KirkDiggler/pongbot/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pongbot/internal/repositories/challenge Repository

// Repository defines the interface for challenge record persistence
type Repository interface {
	// SaveChallenge persists a challenge
	SaveChallenge(ctx context.Context, input *SaveChallengeInput) error

	// GetChallenge retrieves a challenge by ID
	GetChallenge(ctx context.Context, input *GetChallengeInput) (*models.Challenge, error)
}
