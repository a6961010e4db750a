package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/pongbot/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetChallenge() {
	challenge := &models.Challenge{
		ID:         "test-challenge-id",
		State:      models.ChallengeStateProposed,
		Type:       models.ChallengeTypeSingles,
		Date:       s.testNow,
		Challenger: []string{"ZhangJike"},
		Challenged: []string{"DengYaping"},
	}

	err := s.repo.SaveChallenge(context.Background(), &SaveChallengeInput{
		Challenge: challenge,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetChallenge(context.Background(), &GetChallengeInput{
		ChallengeID: "test-challenge-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("test-challenge-id", retrieved.ID)
	s.Equal(models.ChallengeStateProposed, retrieved.State)
	s.Equal(models.ChallengeTypeSingles, retrieved.Type)
	s.Equal(s.testNow.Unix(), retrieved.Date.Unix())
	s.Equal([]string{"ZhangJike"}, retrieved.Challenger)
	s.Equal([]string{"DengYaping"}, retrieved.Challenged)
}

func (s *RedisRepositoryTestSuite) TestSaveChallengeUpdatesState() {
	challenge := &models.Challenge{
		ID:         "test-challenge-id",
		State:      models.ChallengeStateProposed,
		Type:       models.ChallengeTypeDoubles,
		Date:       s.testNow,
		Challenger: []string{"ZhangJike", "DengYaping"},
		Challenged: []string{"ChenQi", "ViktorBarna"},
	}

	err := s.repo.SaveChallenge(context.Background(), &SaveChallengeInput{
		Challenge: challenge,
	})
	s.Require().NoError(err)

	challenge.State = models.ChallengeStateAccepted
	err = s.repo.SaveChallenge(context.Background(), &SaveChallengeInput{
		Challenge: challenge,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetChallenge(context.Background(), &GetChallengeInput{
		ChallengeID: "test-challenge-id",
	})
	s.Require().NoError(err)
	s.Equal(models.ChallengeStateAccepted, retrieved.State)
}

func (s *RedisRepositoryTestSuite) TestGetChallengeNotFound() {
	_, err := s.repo.GetChallenge(context.Background(), &GetChallengeInput{
		ChallengeID: "missing",
	})
	s.Require().ErrorIs(err, ErrChallengeNotFound)
}
