package service

import (
	"context"
	"testing"

	"quiz-console/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// questionWithCorrect builds a question whose 1-based correct answer is idx.
func questionWithCorrect(text string, idx int) domain.Question {
	answers := make([]domain.Answer, 3)
	for i := range answers {
		answers[i] = domain.Answer{Text: string(rune('a' + i)), IsCorrect: i+1 == idx}
	}
	return domain.NewQuestion(text, answers...)
}

func TestScoreSession(t *testing.T) {
	questions := []domain.Question{
		questionWithCorrect("q1", 1),
		questionWithCorrect("q2", 2),
		questionWithCorrect("q3", 1),
	}

	tests := []struct {
		name       string
		selections []int
		want       domain.SessionScore
		wantErr    bool
	}{
		{"two of three", []int{1, 2, 2}, domain.SessionScore{Correct: 2, Total: 3}, false},
		{"all correct", []int{1, 2, 1}, domain.SessionScore{Correct: 3, Total: 3}, false},
		{"none correct", []int{3, 3, 3}, domain.SessionScore{Correct: 0, Total: 3}, false},
		{"too few selections", []int{1, 2}, domain.SessionScore{}, true},
		{"selection zero", []int{0, 2, 1}, domain.SessionScore{}, true},
		{"selection past end", []int{1, 4, 1}, domain.SessionScore{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreSession(questions, tt.selections)
			if tt.wantErr {
				assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreSession_Empty(t *testing.T) {
	got, err := ScoreSession(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionScore{}, got)
}

func TestScoreSession_MultipleCorrectAnswers(t *testing.T) {
	q := domain.NewQuestion("pick a prime",
		domain.Answer{Text: "2", IsCorrect: true},
		domain.Answer{Text: "4"},
		domain.Answer{Text: "5", IsCorrect: true})

	got, err := ScoreSession([]domain.Question{q, q}, []int{3, 2})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionScore{Correct: 1, Total: 2}, got)
}

func seededQuizService(t *testing.T, history AttemptHistoryService, sampleSize int) QuizService {
	t.Helper()
	bank, _ := newBankService(t)
	_, err := bank.AddQuestionGroup("Math", group("Algebra", "m1", "m2"))
	require.NoError(t, err)
	_, err = bank.AddQuestionGroup("Math", group("Geometry", "m3"))
	require.NoError(t, err)
	_, err = bank.AddQuestionGroup("Art", group("Paint", "a1", "a2", "a3"))
	require.NoError(t, err)
	_, err = bank.AddQuestionGroup("Math", group("Algebra", "m4"))
	require.NoError(t, err)
	return NewQuizService(bank, history, sampleSize)
}

func texts(questions []domain.Question) []string {
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = q.Text
	}
	return out
}

func TestQuizService_SelectQuizSource(t *testing.T) {
	svc := seededQuizService(t, nil, 4)

	t.Run("theme", func(t *testing.T) {
		src, err := svc.SelectQuizSource(domain.ThemeChoice("Math", "Algebra"))
		require.NoError(t, err)
		assert.Equal(t, []string{"m1", "m2", "m4"}, texts(src.Questions))
		assert.Equal(t, "Math / Algebra", src.Label)
	})

	t.Run("random", func(t *testing.T) {
		src, err := svc.SelectQuizSource(domain.RandomChoice())
		require.NoError(t, err)
		assert.Len(t, src.Questions, 4)
	})

	t.Run("unknown section", func(t *testing.T) {
		_, err := svc.SelectQuizSource(domain.ThemeChoice("Physics", "Algebra"))
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("unknown theme", func(t *testing.T) {
		_, err := svc.SelectQuizSource(domain.ThemeChoice("Art", "Algebra"))
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestQuizService_RandomDefaultsToTwenty(t *testing.T) {
	svc := seededQuizService(t, nil, 0)
	src, err := svc.SelectQuizSource(domain.RandomChoice())
	require.NoError(t, err)
	// fewer than 20 questions in the bank: all of them
	assert.Len(t, src.Questions, 7)
	assert.Equal(t, "random 20", src.Label)
}

func TestQuizService_CheckAnswer(t *testing.T) {
	svc := seededQuizService(t, nil, 4)
	q := questionWithCorrect("q", 2)

	ok, err := svc.CheckAnswer(q, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckAnswer(q, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CheckAnswer(q, 4)
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
}

func TestQuizService_FinishSessionRecordsHistory(t *testing.T) {
	cache := NewManualMockCache()
	history := NewAttemptHistoryService(cache, 0)
	svc := seededQuizService(t, history, 4)
	ctx := context.Background()

	src, err := svc.SelectQuizSource(domain.ThemeChoice("Art", "Paint"))
	require.NoError(t, err)

	score, err := svc.FinishSession(ctx, "alice", src, []int{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionScore{Correct: 2, Total: 3}, score)

	attempts, err := svc.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "Art / Paint", attempts[0].Source)
	assert.Equal(t, 2, attempts[0].Correct)
	assert.Equal(t, 3, attempts[0].Total)
}

func TestQuizService_FinishSessionSurvivesHistoryFailure(t *testing.T) {
	cache := NewManualMockCache()
	cache.HSetFunc = func(ctx context.Context, key, field, value string) error { return errBoom }
	svc := seededQuizService(t, NewAttemptHistoryService(cache, 0), 4)

	src, err := svc.SelectQuizSource(domain.ThemeChoice("Math", "Geometry"))
	require.NoError(t, err)

	score, err := svc.FinishSession(context.Background(), "alice", src, []int{1})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionScore{Correct: 1, Total: 1}, score)
}

func TestQuizService_FinishSessionInvalidSelections(t *testing.T) {
	svc := seededQuizService(t, nil, 4)
	src, err := svc.SelectQuizSource(domain.ThemeChoice("Math", "Geometry"))
	require.NoError(t, err)

	_, err = svc.FinishSession(context.Background(), "alice", src, []int{1, 1})
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
}
