package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"quiz-console/internal/cache"
	"quiz-console/internal/domain"
	"quiz-console/internal/logger"
	"quiz-console/internal/util"
	"quiz-console/internal/validation"

	"go.uber.org/zap"
)

// AttemptHistoryService keeps finished quiz sessions per nickname.
type AttemptHistoryService interface {
	Record(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error)
	List(ctx context.Context, nickname string) ([]domain.Attempt, error)
	Clear(ctx context.Context, nickname string) error
}

type attemptHistoryServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewAttemptHistoryService creates a history backed by cache. A nil cache
// yields a no-op history.
func NewAttemptHistoryService(cache domain.Cache, ttl time.Duration) AttemptHistoryService {
	if cache == nil {
		logger.Get().Warn("AttemptHistoryService initialized with nil cache. History will not be kept.")
		return &noopAttemptHistoryService{}
	}
	return &attemptHistoryServiceImpl{cache: cache, ttl: ttl}
}

func (s *attemptHistoryServiceImpl) generateKey(nickname string) string {
	return cache.HistoryKey(nickname)
}

// Record stores attempt under its nickname. A missing ID is filled with a
// new ULID and a zero FinishedAt with the current time.
func (s *attemptHistoryServiceImpl) Record(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error) {
	if attempt.Nickname == "" {
		return domain.Attempt{}, domain.NewInvalidInputError("attempt needs a nickname")
	}
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	if attempt.FinishedAt.IsZero() {
		attempt.FinishedAt = time.Now().UTC()
	}

	data, err := json.Marshal(attempt)
	if err != nil {
		return domain.Attempt{}, domain.NewInternalError("failed to marshal attempt", err)
	}

	key := s.generateKey(attempt.Nickname)
	if err := s.cache.HSet(ctx, key, attempt.ID, string(data)); err != nil {
		logger.Get().Error("Failed to record attempt", zap.Error(err), zap.String("key", key))
		return domain.Attempt{}, domain.NewInternalError(fmt.Sprintf("failed to record attempt for key %s", key), err)
	}
	if s.ttl > 0 {
		if err := s.cache.Expire(ctx, key, s.ttl); err != nil {
			// the attempt is stored, only its expiry failed
			logger.Get().Warn("Failed to set history expiry", zap.Error(err), zap.String("key", key))
		}
	}

	logger.Get().Debug("Attempt recorded", zap.String("key", key), zap.String("id", attempt.ID))
	return attempt, nil
}

// List returns the attempts of nickname, oldest first.
func (s *attemptHistoryServiceImpl) List(ctx context.Context, nickname string) ([]domain.Attempt, error) {
	key := s.generateKey(nickname)
	fields, err := s.cache.HGetAll(ctx, key)
	if err != nil {
		logger.Get().Error("Failed to read history", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read history for key %s", key), err)
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		if !validation.IsValidULID(id) {
			logger.Get().Warn("Skipping attempt with malformed id", zap.String("key", key), zap.String("id", id))
			continue
		}
		ids = append(ids, id)
	}
	// ULIDs sort lexicographically by creation time
	sort.Strings(ids)

	attempts := make([]domain.Attempt, 0, len(ids))
	for _, id := range ids {
		var attempt domain.Attempt
		if err := json.Unmarshal([]byte(fields[id]), &attempt); err != nil {
			logger.Get().Warn("Skipping unreadable attempt", zap.Error(err), zap.String("key", key), zap.String("id", id))
			continue
		}
		attempts = append(attempts, attempt)
	}
	return attempts, nil
}

// Clear drops the whole history of nickname.
func (s *attemptHistoryServiceImpl) Clear(ctx context.Context, nickname string) error {
	key := s.generateKey(nickname)
	if err := s.cache.Delete(ctx, key); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to clear history for key %s", key), err)
	}
	return nil
}

// noopAttemptHistoryService is used when no history backend is configured.
type noopAttemptHistoryService struct{}

func (s *noopAttemptHistoryService) Record(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error) {
	logger.Get().Debug("No-op AttemptHistoryService: Record called", zap.String("nickname", attempt.Nickname))
	return attempt, nil
}

func (s *noopAttemptHistoryService) List(ctx context.Context, nickname string) ([]domain.Attempt, error) {
	return []domain.Attempt{}, nil
}

func (s *noopAttemptHistoryService) Clear(ctx context.Context, nickname string) error {
	return nil
}
