package league

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/pongbot/internal/common/clock"
	"github.com/KirkDiggler/pongbot/internal/common/uuid"
	"github.com/KirkDiggler/pongbot/internal/elo"
	"github.com/KirkDiggler/pongbot/internal/leaderboard"
	"github.com/KirkDiggler/pongbot/internal/models"
	challengeRepo "github.com/KirkDiggler/pongbot/internal/repositories/challenge"
	playerRepo "github.com/KirkDiggler/pongbot/internal/repositories/player"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	channel       string
	playerRepo    playerRepo.Repository
	challengeRepo challengeRepo.Repository
	rating        *elo.Calculator
	clock         clock.Clock
	uuid          uuid.UUID
	logger        *zap.Logger
}

// New creates a new league service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.ChallengeRepo == nil {
		return nil, ErrNilChallengeRepo
	}
	if cfg.Rating == nil {
		return nil, ErrNilRating
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUID == nil {
		return nil, ErrNilUUIDGenerator
	}

	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		channel:       channel,
		playerRepo:    cfg.PlayerRepo,
		challengeRepo: cfg.ChallengeRepo,
		rating:        cfg.Rating,
		clock:         cfg.Clock,
		uuid:          cfg.UUID,
		logger:        logger,
	}, nil
}

// Channel returns the notification channel name front-ends should
// announce to.
func (s *service) Channel() string {
	return s.channel
}

// RegisterPlayer adds a new player to the roster with zeroed counters
func (s *service) RegisterPlayer(ctx context.Context, input *RegisterPlayerInput) (*RegisterPlayerOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	player := &models.Player{
		Name: input.Name,
	}

	err := s.playerRepo.CreatePlayer(ctx, &playerRepo.CreatePlayerInput{
		Player: player,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerExists) {
			return nil, &AlreadyRegisteredError{Name: input.Name}
		}
		return nil, err
	}

	s.logger.Info("registered player", zap.String("player", player.Name))

	return &RegisterPlayerOutput{
		Player: player,
	}, nil
}

// RegisterPlayers registers each name independently. Successful
// registrations stay on the roster even when a later name fails.
func (s *service) RegisterPlayers(ctx context.Context, input *RegisterPlayersInput) (*RegisterPlayersOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	players := make([]*models.Player, 0, len(input.Names))
	var firstErr error
	for _, name := range input.Names {
		output, err := s.RegisterPlayer(ctx, &RegisterPlayerInput{Name: name})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		players = append(players, output.Player)
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return &RegisterPlayersOutput{
		Players: players,
	}, nil
}

// FindPlayer resolves a name to a player record. One leading @ sigil
// is stripped, so "X" and "@X" resolve identically.
func (s *service) FindPlayer(ctx context.Context, input *FindPlayerInput) (*models.Player, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	name := strings.TrimPrefix(input.Name, "@")

	player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		Name: name,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, err
	}

	return player, nil
}

// FindPlayers resolves each name in input order, failing on the first
// name that is not on the roster.
func (s *service) FindPlayers(ctx context.Context, input *FindPlayersInput) ([]*models.Player, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	players := make([]*models.Player, 0, len(input.Names))
	for _, name := range input.Names {
		player, err := s.FindPlayer(ctx, &FindPlayerInput{Name: name})
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}

	return players, nil
}

// EnsureUniquePlayers validates that no name occurs more than once.
// The reported hand count is two per occurrence of the first
// duplicated name.
func EnsureUniquePlayers(names []string) ([]string, error) {
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name]++
	}

	for _, name := range names {
		if counts[name] > 1 {
			return nil, &ExtraHandsError{
				Name:  name,
				Hands: 2 * counts[name],
			}
		}
	}

	return names, nil
}

// SetChallenge assigns the challenge to each named player in input
// order. Assignments already made stick even when a later player turns
// out to be busy; callers must not assume atomicity across the set.
func (s *service) SetChallenge(ctx context.Context, input *SetChallengeInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	for _, name := range input.Names {
		player, err := s.FindPlayer(ctx, &FindPlayerInput{Name: name})
		if err != nil {
			return err
		}

		if player.HasActiveChallenge() && player.CurrentChallengeID != input.ChallengeID {
			return s.activeChallengeError(ctx, player.CurrentChallengeID)
		}

		err = s.playerRepo.SetCurrentChallenge(ctx, &playerRepo.SetCurrentChallengeInput{
			Name:                player.Name,
			ChallengeID:         input.ChallengeID,
			ExpectedChallengeID: player.CurrentChallengeID,
		})
		if errors.Is(err, playerRepo.ErrChallengeMismatch) {
			// a concurrent proposal won the slot between our read and
			// write; re-read so the error names the right challenge
			fresh, ferr := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{Name: player.Name})
			if ferr == nil && fresh.HasActiveChallenge() && fresh.CurrentChallengeID != input.ChallengeID {
				return s.activeChallengeError(ctx, fresh.CurrentChallengeID)
			}
			return err
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// activeChallengeError builds the conflict error from the first two
// distinct participants of the pre-existing challenge.
func (s *service) activeChallengeError(ctx context.Context, challengeID string) error {
	existing, err := s.challengeRepo.GetChallenge(ctx, &challengeRepo.GetChallengeInput{
		ChallengeID: challengeID,
	})
	if err != nil {
		return err
	}

	participants := existing.Participants()
	playerOne := participants[0]
	playerTwo := ""
	for _, name := range participants[1:] {
		if name != playerOne {
			playerTwo = name
			break
		}
	}

	return &ActiveChallengeError{
		PlayerOne: playerOne,
		PlayerTwo: playerTwo,
	}
}

// CreateSingleChallenge proposes a one-on-one challenge
func (s *service) CreateSingleChallenge(ctx context.Context, input *CreateSingleChallengeInput) (*CreateChallengeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if _, err := EnsureUniquePlayers([]string{input.Challenger, input.Challenged}); err != nil {
		return nil, err
	}

	players, err := s.FindPlayers(ctx, &FindPlayersInput{
		Names: []string{input.Challenger, input.Challenged},
	})
	if err != nil {
		return nil, err
	}

	challenger, challenged := players[0], players[1]

	challenge := &models.Challenge{
		ID:         s.uuid.NewUUID(),
		State:      models.ChallengeStateProposed,
		Type:       models.ChallengeTypeSingles,
		Date:       s.clock.Now(),
		Challenger: []string{challenger.Name},
		Challenged: []string{challenged.Name},
	}

	if err := s.proposeChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	return &CreateChallengeOutput{
		Message:   fmt.Sprintf("%s has challenged %s to a match!", challenger.Name, challenged.Name),
		Challenge: challenge,
	}, nil
}

// CreateDoubleChallenge proposes a two-on-two challenge
func (s *service) CreateDoubleChallenge(ctx context.Context, input *CreateDoubleChallengeInput) (*CreateChallengeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	names := []string{input.Challenger1, input.Challenger2, input.Challenged1, input.Challenged2}
	if _, err := EnsureUniquePlayers(names); err != nil {
		return nil, err
	}

	players, err := s.FindPlayers(ctx, &FindPlayersInput{Names: names})
	if err != nil {
		return nil, err
	}

	challenge := &models.Challenge{
		ID:         s.uuid.NewUUID(),
		State:      models.ChallengeStateProposed,
		Type:       models.ChallengeTypeDoubles,
		Date:       s.clock.Now(),
		Challenger: []string{players[0].Name, players[1].Name},
		Challenged: []string{players[2].Name, players[3].Name},
	}

	if err := s.proposeChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	return &CreateChallengeOutput{
		Message: fmt.Sprintf("%s and %s have challenged %s and %s to a match!",
			players[0].Name, players[1].Name, players[2].Name, players[3].Name),
		Challenge: challenge,
	}, nil
}

// proposeChallenge persists the challenge and assigns it to every
// participant.
func (s *service) proposeChallenge(ctx context.Context, challenge *models.Challenge) error {
	err := s.challengeRepo.SaveChallenge(ctx, &challengeRepo.SaveChallengeInput{
		Challenge: challenge,
	})
	if err != nil {
		return err
	}

	err = s.SetChallenge(ctx, &SetChallengeInput{
		Names:       challenge.Participants(),
		ChallengeID: challenge.ID,
	})
	if err != nil {
		return err
	}

	s.logger.Info("challenge proposed",
		zap.String("challenge_id", challenge.ID),
		zap.String("type", string(challenge.Type)),
		zap.Strings("challenger", challenge.Challenger),
		zap.Strings("challenged", challenge.Challenged))

	return nil
}

// AcceptChallenge moves the player's proposed challenge to Accepted
func (s *service) AcceptChallenge(ctx context.Context, input *AcceptChallengeInput) (*AcceptChallengeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	player, err := s.FindPlayer(ctx, &FindPlayerInput{Name: input.Name})
	if err != nil {
		return nil, err
	}

	if !player.HasActiveChallenge() {
		return nil, ErrNoChallengeToAccept
	}

	challenge, err := s.challengeRepo.GetChallenge(ctx, &challengeRepo.GetChallengeInput{
		ChallengeID: player.CurrentChallengeID,
	})
	if err != nil {
		return nil, err
	}

	if challenge.State == models.ChallengeStateAccepted {
		return nil, &AlreadyAcceptedError{Challenger: challenge.Challenger[0]}
	}
	if challenge.State != models.ChallengeStateProposed {
		return nil, ErrNoChallengeToAccept
	}

	challenge.State = models.ChallengeStateAccepted
	err = s.challengeRepo.SaveChallenge(ctx, &challengeRepo.SaveChallengeInput{
		Challenge: challenge,
	})
	if err != nil {
		return nil, err
	}

	return &AcceptChallengeOutput{
		Message:   fmt.Sprintf("%s accepted %s's challenge.", player.Name, challenge.Challenger[0]),
		Challenge: challenge,
	}, nil
}

// DeclineChallenge declines the player's proposed challenge and frees
// every participant
func (s *service) DeclineChallenge(ctx context.Context, input *DeclineChallengeInput) (*DeclineChallengeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	player, err := s.FindPlayer(ctx, &FindPlayerInput{Name: input.Name})
	if err != nil {
		return nil, err
	}

	if !player.HasActiveChallenge() {
		return nil, ErrNoChallengeToDecline
	}

	challenge, err := s.challengeRepo.GetChallenge(ctx, &challengeRepo.GetChallengeInput{
		ChallengeID: player.CurrentChallengeID,
	})
	if err != nil {
		return nil, err
	}

	if !challenge.IsActive() {
		return nil, ErrNoChallengeToDecline
	}

	challenge.State = models.ChallengeStateDeclined
	err = s.challengeRepo.SaveChallenge(ctx, &challengeRepo.SaveChallengeInput{
		Challenge: challenge,
	})
	if err != nil {
		return nil, err
	}

	if err := s.clearParticipants(ctx, challenge); err != nil {
		return nil, err
	}

	return &DeclineChallengeOutput{
		Message:   fmt.Sprintf("%s declined %s's challenge.", player.Name, challenge.Challenger[0]),
		Challenge: challenge,
	}, nil
}

// clearParticipants empties the challenge slot of every participant
// whose slot still references the challenge.
func (s *service) clearParticipants(ctx context.Context, challenge *models.Challenge) error {
	for _, name := range challenge.Participants() {
		err := s.playerRepo.SetCurrentChallenge(ctx, &playerRepo.SetCurrentChallengeInput{
			Name:                name,
			ChallengeID:         "",
			ExpectedChallengeID: challenge.ID,
		})
		if err != nil && !errors.Is(err, playerRepo.ErrChallengeMismatch) {
			return err
		}
	}
	return nil
}

// RecordWin records the named player's side as the winner
func (s *service) RecordWin(ctx context.Context, input *RecordWinInput) (*RecordMatchOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	return s.recordResult(ctx, input.Name, true)
}

// RecordLoss records the named player's side as the loser
func (s *service) RecordLoss(ctx context.Context, input *RecordLossInput) (*RecordMatchOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	return s.recordResult(ctx, input.Name, false)
}

func (s *service) recordResult(ctx context.Context, name string, won bool) (*RecordMatchOutput, error) {
	player, err := s.FindPlayer(ctx, &FindPlayerInput{Name: name})
	if err != nil {
		return nil, err
	}

	if !player.HasActiveChallenge() {
		return nil, ErrChallengeNotAccepted
	}

	challenge, err := s.challengeRepo.GetChallenge(ctx, &challengeRepo.GetChallengeInput{
		ChallengeID: player.CurrentChallengeID,
	})
	if err != nil {
		return nil, err
	}

	if challenge.State != models.ChallengeStateAccepted {
		return nil, ErrChallengeNotAccepted
	}

	with, against, ok := challenge.Sides(player.Name)
	if !ok {
		return nil, fmt.Errorf("player %s is not on challenge %s", player.Name, challenge.ID)
	}

	winners, losers := with, against
	if !won {
		winners, losers = against, with
	}

	return s.recordMatch(ctx, challenge, winners, losers)
}

// recordMatch applies the rating change, bumps counters, frees every
// participant, and completes the challenge. The reported team order is
// the order stored on the challenge, not the order of the recording
// call.
func (s *service) recordMatch(ctx context.Context, challenge *models.Challenge, winners, losers []string) (*RecordMatchOutput, error) {
	winningPlayers, err := s.FindPlayers(ctx, &FindPlayersInput{Names: winners})
	if err != nil {
		return nil, err
	}
	losingPlayers, err := s.FindPlayers(ctx, &FindPlayersInput{Names: losers})
	if err != nil {
		return nil, err
	}

	if challenge.Type == models.ChallengeTypeDoubles {
		s.rating.ApplyDoubles(winningPlayers[0], winningPlayers[1], losingPlayers[0], losingPlayers[1])
	} else {
		s.rating.ApplySingles(winningPlayers[0], losingPlayers[0])
	}

	for _, p := range winningPlayers {
		p.Wins++
		p.CurrentChallengeID = ""
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: p}); err != nil {
			return nil, err
		}
	}
	for _, p := range losingPlayers {
		p.Losses++
		p.CurrentChallengeID = ""
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: p}); err != nil {
			return nil, err
		}
	}

	challenge.State = models.ChallengeStateCompleted
	err = s.challengeRepo.SaveChallenge(ctx, &challengeRepo.SaveChallengeInput{
		Challenge: challenge,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("match recorded",
		zap.String("challenge_id", challenge.ID),
		zap.Strings("winners", winners),
		zap.Strings("losers", losers))

	return &RecordMatchOutput{
		Message:   fmt.Sprintf("Match has been recorded, %s defeated %s.", joinNames(winners), joinNames(losers)),
		Challenge: challenge,
	}, nil
}

// joinNames renders a side for display: "A" or "A and B"
func joinNames(names []string) string {
	return strings.Join(names, " and ")
}

// UpdateWins increments the win counter for each named player
func (s *service) UpdateWins(ctx context.Context, input *UpdateWinsInput) ([]*models.Player, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	players, err := s.FindPlayers(ctx, &FindPlayersInput{Names: input.Names})
	if err != nil {
		return nil, err
	}

	for _, p := range players {
		p.Wins++
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: p}); err != nil {
			return nil, err
		}
	}

	return players, nil
}

// UpdateLosses increments the loss counter for each named player
func (s *service) UpdateLosses(ctx context.Context, input *UpdateLossesInput) ([]*models.Player, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	players, err := s.FindPlayers(ctx, &FindPlayersInput{Names: input.Names})
	if err != nil {
		return nil, err
	}

	for _, p := range players {
		p.Losses++
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: p}); err != nil {
			return nil, err
		}
	}

	return players, nil
}

// CalculateTeamElo returns the composite rating of a two-player side
func (s *service) CalculateTeamElo(ctx context.Context, input *CalculateTeamEloInput) (*CalculateTeamEloOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	players, err := s.FindPlayers(ctx, &FindPlayersInput{
		Names: []string{input.NameA, input.NameB},
	})
	if err != nil {
		return nil, err
	}

	return &CalculateTeamEloOutput{
		TeamElo: s.rating.TeamRating(players[0], players[1]),
	}, nil
}

// Reset zeroes a player's counters and rating; tau lands at full
// confidence so the next match barely moves the needle.
func (s *service) Reset(ctx context.Context, input *ResetInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	player, err := s.FindPlayer(ctx, &FindPlayerInput{Name: input.Name})
	if err != nil {
		return err
	}

	resetPlayer(player)

	return s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: player})
}

// ResetAll resets every player on the roster
func (s *service) ResetAll(ctx context.Context) error {
	output, err := s.playerRepo.ListPlayers(ctx)
	if err != nil {
		return err
	}

	for _, player := range output.Players {
		resetPlayer(player)
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: player}); err != nil {
			return err
		}
	}

	return nil
}

func resetPlayer(p *models.Player) {
	p.Wins = 0
	p.Losses = 0
	p.Elo = 0
	p.Tau = 1
}

// GetLeaderboard returns the roster in display order along with the
// rendered standings text
func (s *service) GetLeaderboard(ctx context.Context) (*GetLeaderboardOutput, error) {
	output, err := s.playerRepo.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	players := output.Players
	leaderboard.SortPlayers(players)

	return &GetLeaderboardOutput{
		Players:   players,
		Standings: leaderboard.FormatStandings(players),
	}, nil
}
