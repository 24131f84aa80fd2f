package service

import (
	"context"
	"errors"
	"time"

	"quiz-console/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionBankRepository ---
type MockQuestionBankRepository struct {
	mock.Mock
}

func (m *MockQuestionBankRepository) Load() (*domain.QuestionBank, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestionBank), args.Error(1)
}

func (m *MockQuestionBankRepository) Save(bank *domain.QuestionBank) error {
	args := m.Called(bank)
	return args.Error(0)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Load() (domain.UserStore, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.UserStore), args.Error(1)
}

func (m *MockUserRepository) Save(users domain.UserStore) error {
	args := m.Called(users)
	return args.Error(0)
}

// ManualMockCache is an in-memory domain.Cache whose calls can be overridden.
type ManualMockCache struct {
	hashes map[string]map[string]string
	ttls   map[string]time.Duration

	HSetFunc    func(ctx context.Context, key, field, value string) error
	HGetAllFunc func(ctx context.Context, key string) (map[string]string, error)
	ExpireFunc  func(ctx context.Context, key string, expiration time.Duration) error
}

func NewManualMockCache() *ManualMockCache {
	return &ManualMockCache{
		hashes: make(map[string]map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (m *ManualMockCache) Delete(ctx context.Context, key string) error {
	delete(m.hashes, key)
	delete(m.ttls, key)
	return nil
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	return nil
}

func (m *ManualMockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.HGetAllFunc != nil {
		return m.HGetAllFunc(ctx, key)
	}
	out := make(map[string]string, len(m.hashes[key]))
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *ManualMockCache) HSet(ctx context.Context, key, field, value string) error {
	if m.HSetFunc != nil {
		return m.HSetFunc(ctx, key, field, value)
	}
	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string]string)
	}
	m.hashes[key][field] = value
	return nil
}

func (m *ManualMockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, expiration)
	}
	m.ttls[key] = expiration
	return nil
}

var errBoom = errors.New("boom")
