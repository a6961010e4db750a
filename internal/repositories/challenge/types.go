package challenge

import "github.com/KirkDiggler/pongbot/internal/models"

// SaveChallengeInput contains parameters for saving a challenge
type SaveChallengeInput struct {
	Challenge *models.Challenge
}

// GetChallengeInput contains parameters for retrieving a challenge
type GetChallengeInput struct {
	ChallengeID string
}
