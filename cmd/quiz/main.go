package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"quiz-console/internal/adapter"
	"quiz-console/internal/cache"
	"quiz-console/internal/config"
	"quiz-console/internal/console"
	"quiz-console/internal/domain"
	"quiz-console/internal/logger"
	"quiz-console/internal/repository"
	"quiz-console/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quiz: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()

	fs := afero.NewOsFs()
	userRepository := repository.NewJSONUserRepository(fs, cfg.Storage.UsersPath)
	bankRepository := repository.NewJSONQuestionBankRepository(fs, cfg.Storage.QuestionsPath)

	userService, err := service.NewUserService(userRepository, cfg.IsAdmin)
	if err != nil {
		return loadFailure(cfg.Storage.UsersPath, err)
	}
	bankService, err := service.NewQuestionBankService(bankRepository, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return loadFailure(cfg.Storage.QuestionsPath, err)
	}

	historyService, redisClient := newHistoryService(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	quizService := service.NewQuizService(bankService, historyService, cfg.Quiz.RandomSampleSize)

	stats := bankService.Stats()
	appLogger.Info("Quiz starting",
		zap.Int("users", len(userService.Users())),
		zap.Int("sections", stats.Sections),
		zap.Int("questions", stats.Questions))

	app := console.NewApp(userService, bankService, quizService, os.Stdin, os.Stdout, nil)
	if err := app.Run(ctx); err != nil {
		return err
	}
	appLogger.Info("Quiz finished")
	return nil
}

func loadFailure(path string, err error) error {
	if domain.IsCorruptData(err) {
		return fmt.Errorf("%s is damaged and was left untouched: %w", path, err)
	}
	return err
}

// newHistoryService connects to Redis when an address is configured and
// falls back to a no-op history otherwise. The client is nil without Redis.
func newHistoryService(ctx context.Context, cfg *config.Config) (service.AttemptHistoryService, *redis.Client) {
	if cfg.Redis.Address == "" {
		logger.Get().Info("Redis not configured, quiz history disabled")
		return service.NewAttemptHistoryService(nil, 0), nil
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Get().Warn("Failed to connect to Redis, quiz history disabled", zap.Error(err))
		return service.NewAttemptHistoryService(nil, 0), nil
	}
	logger.Get().Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	return service.NewAttemptHistoryService(adapter.NewRedisCacheAdapter(redisClient), cfg.History.TTL), redisClient
}
