package league

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/pongbot/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/pongbot/internal/common/uuid/mocks"
	"github.com/KirkDiggler/pongbot/internal/elo"
	"github.com/KirkDiggler/pongbot/internal/models"
	challengeRepo "github.com/KirkDiggler/pongbot/internal/repositories/challenge"
	challengeMocks "github.com/KirkDiggler/pongbot/internal/repositories/challenge/mocks"
	playerRepo "github.com/KirkDiggler/pongbot/internal/repositories/player"
	playerMocks "github.com/KirkDiggler/pongbot/internal/repositories/player/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// LeagueServiceMockTestSuite pins down the service's repository
// choreography with mocked dependencies.
type LeagueServiceMockTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	players    *playerMocks.MockRepository
	challenges *challengeMocks.MockRepository
	clock      *clockMocks.MockClock
	uuid       *uuidMocks.MockUUID
	svc        *service
	ctx        context.Context
}

func (s *LeagueServiceMockTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.players = playerMocks.NewMockRepository(s.ctrl)
	s.challenges = challengeMocks.NewMockRepository(s.ctrl)
	s.clock = clockMocks.NewMockClock(s.ctrl)
	s.uuid = uuidMocks.NewMockUUID(s.ctrl)

	svc, err := New(&Config{
		PlayerRepo:    s.players,
		ChallengeRepo: s.challenges,
		Rating:        elo.New(nil),
		Clock:         s.clock,
		UUID:          s.uuid,
	})
	s.Require().NoError(err)
	s.svc = svc

	s.ctx = context.Background()
}

func (s *LeagueServiceMockTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestLeagueServiceMockTestSuite(t *testing.T) {
	suite.Run(t, new(LeagueServiceMockTestSuite))
}

func (s *LeagueServiceMockTestSuite) TestNewValidation() {
	base := func() *Config {
		return &Config{
			PlayerRepo:    s.players,
			ChallengeRepo: s.challenges,
			Rating:        elo.New(nil),
			Clock:         s.clock,
			UUID:          s.uuid,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"nil player repo", func(c *Config) { c.PlayerRepo = nil }, ErrNilPlayerRepo},
		{"nil challenge repo", func(c *Config) { c.ChallengeRepo = nil }, ErrNilChallengeRepo},
		{"nil rating", func(c *Config) { c.Rating = nil }, ErrNilRating},
		{"nil clock", func(c *Config) { c.Clock = nil }, ErrNilClock},
		{"nil uuid", func(c *Config) { c.UUID = nil }, ErrNilUUIDGenerator},
	}

	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		_, err := New(cfg)
		s.ErrorIs(err, tt.wantErr, tt.name)
	}
}

func (s *LeagueServiceMockTestSuite) TestConfiguredChannel() {
	svc, err := New(&Config{
		Channel:       "#league",
		PlayerRepo:    s.players,
		ChallengeRepo: s.challenges,
		Rating:        elo.New(nil),
		Clock:         s.clock,
		UUID:          s.uuid,
	})
	s.Require().NoError(err)
	s.Equal("#league", svc.Channel())
}

func (s *LeagueServiceMockTestSuite) TestCreateSingleChallengeChoreography() {
	now := time.Date(2014, time.July, 20, 12, 0, 0, 0, time.UTC)

	s.uuid.EXPECT().NewUUID().Return("challenge-id")
	s.clock.EXPECT().Now().Return(now)

	s.players.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{Name: "ZhangJike"}).
		Return(&models.Player{Name: "ZhangJike"}, nil).
		Times(2)
	s.players.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{Name: "DengYaping"}).
		Return(&models.Player{Name: "DengYaping"}, nil).
		Times(2)

	wantChallenge := &models.Challenge{
		ID:         "challenge-id",
		State:      models.ChallengeStateProposed,
		Type:       models.ChallengeTypeSingles,
		Date:       now,
		Challenger: []string{"ZhangJike"},
		Challenged: []string{"DengYaping"},
	}

	// the challenge is persisted before either player's slot is written
	save := s.challenges.EXPECT().
		SaveChallenge(s.ctx, &challengeRepo.SaveChallengeInput{Challenge: wantChallenge}).
		Return(nil)
	s.players.EXPECT().
		SetCurrentChallenge(s.ctx, &playerRepo.SetCurrentChallengeInput{
			Name:        "ZhangJike",
			ChallengeID: "challenge-id",
		}).
		Return(nil).
		After(save)
	s.players.EXPECT().
		SetCurrentChallenge(s.ctx, &playerRepo.SetCurrentChallengeInput{
			Name:        "DengYaping",
			ChallengeID: "challenge-id",
		}).
		Return(nil).
		After(save)

	output, err := s.svc.CreateSingleChallenge(s.ctx, &CreateSingleChallengeInput{
		Challenger: "ZhangJike",
		Challenged: "DengYaping",
	})
	s.Require().NoError(err)
	s.Equal("ZhangJike has challenged DengYaping to a match!", output.Message)
	s.Equal(wantChallenge, output.Challenge)
}

func (s *LeagueServiceMockTestSuite) TestSetChallengeLostRace() {
	// the slot looks free on the first read but a concurrent proposal
	// wins the conditional write; the error must name the challenge
	// that actually holds the slot
	first := s.players.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{Name: "ZhangJike"}).
		Return(&models.Player{Name: "ZhangJike"}, nil)
	s.players.EXPECT().
		SetCurrentChallenge(s.ctx, &playerRepo.SetCurrentChallengeInput{
			Name:        "ZhangJike",
			ChallengeID: "challenge-2",
		}).
		Return(playerRepo.ErrChallengeMismatch)
	s.players.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{Name: "ZhangJike"}).
		Return(&models.Player{Name: "ZhangJike", CurrentChallengeID: "challenge-1"}, nil).
		After(first)
	s.challenges.EXPECT().
		GetChallenge(s.ctx, &challengeRepo.GetChallengeInput{ChallengeID: "challenge-1"}).
		Return(&models.Challenge{
			ID:         "challenge-1",
			State:      models.ChallengeStateProposed,
			Type:       models.ChallengeTypeSingles,
			Challenger: []string{"ZhangJike"},
			Challenged: []string{"DengYaping"},
		}, nil)

	err := s.svc.SetChallenge(s.ctx, &SetChallengeInput{
		Names:       []string{"ZhangJike"},
		ChallengeID: "challenge-2",
	})
	s.Require().EqualError(err, "There's already an active challenge between ZhangJike and DengYaping.")
}

func (s *LeagueServiceMockTestSuite) TestSetChallengeStopsAtBusyPlayer() {
	s.players.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{Name: "ZhangJike"}).
		Return(&models.Player{Name: "ZhangJike"}, nil)
	s.players.EXPECT().
		SetCurrentChallenge(s.ctx, &playerRepo.SetCurrentChallengeInput{
			Name:        "ZhangJike",
			ChallengeID: "challenge-2",
		}).
		Return(nil)
	s.players.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{Name: "DengYaping"}).
		Return(&models.Player{Name: "DengYaping", CurrentChallengeID: "challenge-1"}, nil)
	s.challenges.EXPECT().
		GetChallenge(s.ctx, &challengeRepo.GetChallengeInput{ChallengeID: "challenge-1"}).
		Return(&models.Challenge{
			ID:         "challenge-1",
			State:      models.ChallengeStateAccepted,
			Type:       models.ChallengeTypeSingles,
			Challenger: []string{"DengYaping"},
			Challenged: []string{"ChenQi"},
		}, nil)

	// ZhangJike's assignment already went through; no rollback call is
	// expected for it
	err := s.svc.SetChallenge(s.ctx, &SetChallengeInput{
		Names:       []string{"ZhangJike", "DengYaping"},
		ChallengeID: "challenge-2",
	})
	s.Require().EqualError(err, "There's already an active challenge between DengYaping and ChenQi.")
}

func (s *LeagueServiceMockTestSuite) TestSetChallengeIdempotentAssignment() {
	// a player already holding the same challenge is written again with
	// a matching expectation rather than rejected
	s.players.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{Name: "ZhangJike"}).
		Return(&models.Player{Name: "ZhangJike", CurrentChallengeID: "challenge-1"}, nil)
	s.players.EXPECT().
		SetCurrentChallenge(s.ctx, &playerRepo.SetCurrentChallengeInput{
			Name:                "ZhangJike",
			ChallengeID:         "challenge-1",
			ExpectedChallengeID: "challenge-1",
		}).
		Return(nil)

	err := s.svc.SetChallenge(s.ctx, &SetChallengeInput{
		Names:       []string{"ZhangJike"},
		ChallengeID: "challenge-1",
	})
	s.Require().NoError(err)
}

func (s *LeagueServiceMockTestSuite) TestDeclineChallengeToleratesReassignedSlots() {
	challenge := &models.Challenge{
		ID:         "challenge-1",
		State:      models.ChallengeStateProposed,
		Type:       models.ChallengeTypeSingles,
		Challenger: []string{"ZhangJike"},
		Challenged: []string{"DengYaping"},
	}

	s.players.EXPECT().
		GetPlayer(s.ctx, &playerRepo.GetPlayerInput{Name: "DengYaping"}).
		Return(&models.Player{Name: "DengYaping", CurrentChallengeID: "challenge-1"}, nil)
	s.challenges.EXPECT().
		GetChallenge(s.ctx, &challengeRepo.GetChallengeInput{ChallengeID: "challenge-1"}).
		Return(challenge, nil)
	s.challenges.EXPECT().
		SaveChallenge(s.ctx, gomock.Any()).
		Return(nil)

	// the challenger's slot moved on already; the mismatch is swallowed
	// and the decline still succeeds
	s.players.EXPECT().
		SetCurrentChallenge(s.ctx, &playerRepo.SetCurrentChallengeInput{
			Name:                "ZhangJike",
			ExpectedChallengeID: "challenge-1",
		}).
		Return(playerRepo.ErrChallengeMismatch)
	s.players.EXPECT().
		SetCurrentChallenge(s.ctx, &playerRepo.SetCurrentChallengeInput{
			Name:                "DengYaping",
			ExpectedChallengeID: "challenge-1",
		}).
		Return(nil)

	output, err := s.svc.DeclineChallenge(s.ctx, &DeclineChallengeInput{Name: "DengYaping"})
	s.Require().NoError(err)
	s.Equal("DengYaping declined ZhangJike's challenge.", output.Message)
	s.Equal(models.ChallengeStateDeclined, output.Challenge.State)
}
