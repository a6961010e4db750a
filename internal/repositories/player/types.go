package player

import "github.com/KirkDiggler/pongbot/internal/models"

// CreatePlayerInput contains parameters for creating a player
type CreatePlayerInput struct {
	Player *models.Player
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	Name string
}

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.Player
}

// ListPlayersOutput contains the result of listing the roster
type ListPlayersOutput struct {
	Players []*models.Player
}

// SetCurrentChallengeInput contains parameters for the conditional
// challenge-slot update. The write only goes through while the stored
// CurrentChallengeID still equals ExpectedChallengeID.
type SetCurrentChallengeInput struct {
	Name                string
	ChallengeID         string
	ExpectedChallengeID string
}
