package service

import (
	"context"
	"fmt"

	"quiz-console/internal/domain"
	"quiz-console/internal/logger"

	"go.uber.org/zap"
)

// DefaultRandomSampleSize is the size of the cross-section random quiz.
const DefaultRandomSampleSize = 20

// QuizService resolves quiz choices and scores finished sessions.
type QuizService interface {
	// SelectQuizSource turns a menu choice into the questions to ask.
	SelectQuizSource(choice domain.QuizChoice) (domain.QuizSource, error)

	// CheckAnswer reports whether the 1-based selection is a correct answer.
	CheckAnswer(question domain.Question, selection int) (bool, error)

	// FinishSession scores the session and records it in the history of nickname.
	FinishSession(ctx context.Context, nickname string, source domain.QuizSource, selections []int) (domain.SessionScore, error)

	History(ctx context.Context, nickname string) ([]domain.Attempt, error)
}

type quizService struct {
	bank       QuestionBankService
	history    AttemptHistoryService
	sampleSize int
}

// NewQuizService creates a new instance of quizService. history may be nil.
func NewQuizService(bank QuestionBankService, history AttemptHistoryService, sampleSize int) QuizService {
	if sampleSize <= 0 {
		sampleSize = DefaultRandomSampleSize
	}
	if history == nil {
		history = NewAttemptHistoryService(nil, 0)
	}
	return &quizService{bank: bank, history: history, sampleSize: sampleSize}
}

// SelectQuizSource implements QuizService
func (s *quizService) SelectQuizSource(choice domain.QuizChoice) (domain.QuizSource, error) {
	return SelectQuizSource(s.bank, choice, s.sampleSize)
}

// CheckAnswer implements QuizService
func (s *quizService) CheckAnswer(question domain.Question, selection int) (bool, error) {
	if selection < 1 || selection > len(question.Answers) {
		return false, domain.NewInvalidInputError(
			fmt.Sprintf("selection %d out of range 1..%d", selection, len(question.Answers)))
	}
	return question.Answers[selection-1].IsCorrect, nil
}

// FinishSession implements QuizService
func (s *quizService) FinishSession(ctx context.Context, nickname string, source domain.QuizSource, selections []int) (domain.SessionScore, error) {
	score, err := ScoreSession(source.Questions, selections)
	if err != nil {
		return domain.SessionScore{}, err
	}

	logger.Get().Info("Quiz finished",
		zap.String("nickname", nickname),
		zap.String("source", source.Label),
		zap.Int("correct", score.Correct),
		zap.Int("total", score.Total))

	_, err = s.history.Record(ctx, domain.Attempt{
		Nickname: nickname,
		Source:   source.Label,
		Correct:  score.Correct,
		Total:    score.Total,
	})
	if err != nil {
		// the score stands even when history is unavailable
		logger.Get().Warn("Failed to record attempt", zap.String("nickname", nickname), zap.Error(err))
	}
	return score, nil
}

// History implements QuizService
func (s *quizService) History(ctx context.Context, nickname string) ([]domain.Attempt, error) {
	return s.history.List(ctx, nickname)
}

// SelectQuizSource resolves choice against bank. A random choice samples
// sampleSize questions across all sections; a theme choice collects every
// question of the matching groups in order. Unknown sections or themes give
// a NOT_FOUND error.
func SelectQuizSource(bank QuestionBankService, choice domain.QuizChoice, sampleSize int) (domain.QuizSource, error) {
	if choice.Random {
		return domain.QuizSource{
			Label:     fmt.Sprintf("random %d", sampleSize),
			Questions: bank.RandomSample(sampleSize),
		}, nil
	}

	section, theme := choice.Section, choice.Theme
	groups, err := bank.QuestionsForTheme(section, theme)
	if err != nil {
		return domain.QuizSource{}, err
	}
	if len(groups) == 0 {
		return domain.QuizSource{}, domain.NewSelectionNotFoundError(section, theme)
	}

	var questions []domain.Question
	for _, g := range groups {
		questions = append(questions, g.Questions...)
	}
	return domain.QuizSource{
		Label:     section + " / " + theme,
		Questions: questions,
	}, nil
}

// ScoreSession counts the questions whose selected answer is correct.
// selections holds one 1-based answer index per question.
func ScoreSession(questions []domain.Question, selections []int) (domain.SessionScore, error) {
	if len(questions) != len(selections) {
		return domain.SessionScore{}, domain.NewInvalidInputError(
			fmt.Sprintf("got %d selections for %d questions", len(selections), len(questions)))
	}

	score := domain.SessionScore{Total: len(questions)}
	for i, q := range questions {
		sel := selections[i]
		if sel < 1 || sel > len(q.Answers) {
			return domain.SessionScore{}, domain.NewInvalidInputError(
				fmt.Sprintf("question %d: selection %d out of range 1..%d", i+1, sel, len(q.Answers)))
		}
		if q.Answers[sel-1].IsCorrect {
			score.Correct++
		}
	}
	return score, nil
}
