package league

import (
	"github.com/KirkDiggler/pongbot/internal/common/clock"
	"github.com/KirkDiggler/pongbot/internal/common/uuid"
	"github.com/KirkDiggler/pongbot/internal/elo"
	"github.com/KirkDiggler/pongbot/internal/models"
	challengeRepo "github.com/KirkDiggler/pongbot/internal/repositories/challenge"
	playerRepo "github.com/KirkDiggler/pongbot/internal/repositories/player"
	"go.uber.org/zap"
)

// DefaultChannel is the chat channel announcements are addressed to
// when none is configured.
const DefaultChannel = "#pongbot"

// Config holds configuration for the league service
type Config struct {
	// Channel is the notification channel name surfaced to front-ends
	Channel string

	// Repository dependencies
	PlayerRepo    playerRepo.Repository
	ChallengeRepo challengeRepo.Repository

	// Service dependencies
	Rating *elo.Calculator
	Clock  clock.Clock
	UUID   uuid.UUID

	// Logger is optional; a no-op logger is used when nil
	Logger *zap.Logger
}

// RegisterPlayerInput contains parameters for registering a player
type RegisterPlayerInput struct {
	Name string
}

// RegisterPlayerOutput contains the newly registered player
type RegisterPlayerOutput struct {
	Player *models.Player
}

// RegisterPlayersInput contains parameters for registering several players
type RegisterPlayersInput struct {
	Names []string
}

// RegisterPlayersOutput contains the registered players
type RegisterPlayersOutput struct {
	Players []*models.Player
}

// FindPlayerInput contains parameters for resolving one player.
// Name may carry one leading @ sigil.
type FindPlayerInput struct {
	Name string
}

// FindPlayersInput contains parameters for resolving several players
type FindPlayersInput struct {
	Names []string
}

// SetChallengeInput contains parameters for assigning a challenge
type SetChallengeInput struct {
	Names       []string
	ChallengeID string
}

// CreateSingleChallengeInput contains parameters for a singles challenge
type CreateSingleChallengeInput struct {
	Challenger string
	Challenged string
}

// CreateDoubleChallengeInput contains parameters for a doubles
// challenge: Challenger1/2 versus Challenged1/2
type CreateDoubleChallengeInput struct {
	Challenger1 string
	Challenger2 string
	Challenged1 string
	Challenged2 string
}

// CreateChallengeOutput contains the created challenge and a
// ready-to-display message
type CreateChallengeOutput struct {
	Message   string
	Challenge *models.Challenge
}

// AcceptChallengeInput contains parameters for accepting a challenge
type AcceptChallengeInput struct {
	Name string
}

// AcceptChallengeOutput contains the accepted challenge and a
// ready-to-display message
type AcceptChallengeOutput struct {
	Message   string
	Challenge *models.Challenge
}

// DeclineChallengeInput contains parameters for declining a challenge
type DeclineChallengeInput struct {
	Name string
}

// DeclineChallengeOutput contains the declined challenge and a
// ready-to-display message
type DeclineChallengeOutput struct {
	Message   string
	Challenge *models.Challenge
}

// RecordWinInput names the player whose side won
type RecordWinInput struct {
	Name string
}

// RecordLossInput names the player whose side lost
type RecordLossInput struct {
	Name string
}

// RecordMatchOutput contains the completed challenge and a
// ready-to-display message
type RecordMatchOutput struct {
	Message   string
	Challenge *models.Challenge
}

// UpdateWinsInput contains the players whose win counters increment
type UpdateWinsInput struct {
	Names []string
}

// UpdateLossesInput contains the players whose loss counters increment
type UpdateLossesInput struct {
	Names []string
}

// CalculateTeamEloInput names the two players forming a side
type CalculateTeamEloInput struct {
	NameA string
	NameB string
}

// CalculateTeamEloOutput contains the composite rating; it is never
// persisted
type CalculateTeamEloOutput struct {
	TeamElo float64
}

// ResetInput contains parameters for resetting one player
type ResetInput struct {
	Name string
}

// GetLeaderboardOutput contains the roster in display order and the
// rendered standings
type GetLeaderboardOutput struct {
	Players   []*models.Player
	Standings string
}
