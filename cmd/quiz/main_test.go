package main

import (
	"context"
	"testing"
	"time"

	"quiz-console/internal/config"
	"quiz-console/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistoryService_WithoutRedis(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{"not configured", ""},
		{"unreachable", "127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			cfg := &config.Config{Redis: config.RedisConfig{Address: tt.address}, History: config.HistoryConfig{TTL: time.Hour}}
			history, client := newHistoryService(ctx, cfg)
			assert.Nil(t, client)
			require.NotNil(t, history)

			recorded, err := history.Record(ctx, domain.Attempt{Nickname: "alice", Correct: 1, Total: 1})
			require.NoError(t, err)
			assert.Equal(t, "alice", recorded.Nickname)
		})
	}
}

func TestLoadFailure(t *testing.T) {
	err := loadFailure("users.json", domain.NewCorruptDataError("users.json", assert.AnError))
	assert.Contains(t, err.Error(), "users.json is damaged")
	assert.True(t, domain.IsCorruptData(err))

	assert.Equal(t, assert.AnError, loadFailure("users.json", assert.AnError))
}
