package league

import (
	"context"

	"github.com/KirkDiggler/pongbot/internal/models"
)

// Service defines the interface for league operations: the roster,
// the challenge lifecycle, and match recording.
type Service interface {
	// RegisterPlayer adds a new player to the roster with zeroed counters
	RegisterPlayer(ctx context.Context, input *RegisterPlayerInput) (*RegisterPlayerOutput, error)

	// RegisterPlayers registers each name independently; an individual
	// failure does not roll back prior successes
	RegisterPlayers(ctx context.Context, input *RegisterPlayersInput) (*RegisterPlayersOutput, error)

	// FindPlayer resolves a name or @mention to a player record
	FindPlayer(ctx context.Context, input *FindPlayerInput) (*models.Player, error)

	// FindPlayers resolves each name in input order
	FindPlayers(ctx context.Context, input *FindPlayersInput) ([]*models.Player, error)

	// SetChallenge assigns a challenge to each named player, in input
	// order and without atomicity across the whole set
	SetChallenge(ctx context.Context, input *SetChallengeInput) error

	// CreateSingleChallenge proposes a one-on-one challenge
	CreateSingleChallenge(ctx context.Context, input *CreateSingleChallengeInput) (*CreateChallengeOutput, error)

	// CreateDoubleChallenge proposes a two-on-two challenge
	CreateDoubleChallenge(ctx context.Context, input *CreateDoubleChallengeInput) (*CreateChallengeOutput, error)

	// AcceptChallenge moves the player's proposed challenge to Accepted
	AcceptChallenge(ctx context.Context, input *AcceptChallengeInput) (*AcceptChallengeOutput, error)

	// DeclineChallenge declines the player's proposed challenge and
	// frees every participant
	DeclineChallenge(ctx context.Context, input *DeclineChallengeInput) (*DeclineChallengeOutput, error)

	// RecordWin records the player's side as the winner of their
	// accepted challenge
	RecordWin(ctx context.Context, input *RecordWinInput) (*RecordMatchOutput, error)

	// RecordLoss records the player's side as the loser of their
	// accepted challenge
	RecordLoss(ctx context.Context, input *RecordLossInput) (*RecordMatchOutput, error)

	// UpdateWins increments the win counter for each named player
	UpdateWins(ctx context.Context, input *UpdateWinsInput) ([]*models.Player, error)

	// UpdateLosses increments the loss counter for each named player
	UpdateLosses(ctx context.Context, input *UpdateLossesInput) ([]*models.Player, error)

	// CalculateTeamElo returns the composite rating of a two-player side
	CalculateTeamElo(ctx context.Context, input *CalculateTeamEloInput) (*CalculateTeamEloOutput, error)

	// Reset zeroes a player's record and restores full rating confidence
	Reset(ctx context.Context, input *ResetInput) error

	// ResetAll resets every player on the roster
	ResetAll(ctx context.Context) error

	// GetLeaderboard returns the roster in display order with the
	// rendered standings text
	GetLeaderboard(ctx context.Context) (*GetLeaderboardOutput, error)
}
