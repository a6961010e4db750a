package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/KirkDiggler/pongbot/internal/common/clock"
	"github.com/KirkDiggler/pongbot/internal/common/uuid"
	"github.com/KirkDiggler/pongbot/internal/elo"
	"github.com/KirkDiggler/pongbot/internal/repositories/challenge"
	"github.com/KirkDiggler/pongbot/internal/repositories/player"
	"github.com/KirkDiggler/pongbot/internal/services/celebration"
	"github.com/KirkDiggler/pongbot/internal/services/league"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize repositories
	playerRepo, err := player.NewRedis(&player.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("Failed to create player repository", zap.Error(err))
	}

	challengeRepo, err := challenge.NewRedis(&challenge.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("Failed to create challenge repository", zap.Error(err))
	}

	// Initialize rating calculator
	deltaTau := elo.DefaultDeltaTau
	if raw := getEnv("ELO_DELTA_TAU", ""); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logger.Fatal("Invalid ELO_DELTA_TAU", zap.String("value", raw), zap.Error(err))
		}
		deltaTau = parsed
	}
	rating := elo.New(&elo.Config{DeltaTau: deltaTau})

	// Initialize league service
	leagueSvc, err := league.New(&league.Config{
		Channel:       getEnv("LEAGUE_CHANNEL", league.DefaultChannel),
		PlayerRepo:    playerRepo,
		ChallengeRepo: challengeRepo,
		Rating:        rating,
		Clock:         &clock.DefaultClock{},
		UUID:          uuid.New(),
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Failed to create league service", zap.Error(err))
	}

	// Initialize celebration service
	celebrationSvc, err := celebration.New(&celebration.Config{
		APIURL: getEnv("GIF_API_URL", ""),
	})
	if err != nil {
		logger.Fatal("Failed to create celebration service", zap.Error(err))
	}

	if gif, err := celebrationSvc.GetDuelGif(ctx); err == nil {
		logger.Info("celebration gifs ready", zap.String("sample", gif.URL))
	}

	logger.Info("league service ready",
		zap.String("channel", leagueSvc.Channel()),
		zap.Float64("delta_tau", deltaTau))

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := redisClient.Close(); err != nil {
		logger.Error("Error closing Redis client", zap.Error(err))
	}

	logger.Info("Bot has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
