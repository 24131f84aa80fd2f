package service

import (
	"math/rand"
	"strings"
	"time"

	"quiz-console/internal/domain"
	"quiz-console/internal/logger"
	"quiz-console/internal/util"

	"go.uber.org/zap"
)

// QuestionBankService owns the in-memory question bank and persists every
// change through the repository.
type QuestionBankService interface {
	// AddQuestionGroup assigns the next ID to group, appends it to section and
	// saves the whole bank. It returns the stored group.
	AddQuestionGroup(section string, group domain.QuestionGroup) (domain.QuestionGroup, error)

	// RandomSample returns min(n, total) distinct questions drawn from every section.
	RandomSample(n int) []domain.Question

	// QuestionsForTheme returns the groups of section with the given theme.
	QuestionsForTheme(section, theme string) ([]domain.QuestionGroup, error)

	Sections() []string
	Themes(section string) ([]string, error)
	Stats() domain.BankStats
	LastID() int
}

type questionBankService struct {
	repo domain.QuestionBankRepository
	bank *domain.QuestionBank
	rng  *rand.Rand
}

// NewQuestionBankService loads the bank and returns a service around it.
// rng may be nil, in which case a time-seeded source is used.
func NewQuestionBankService(repo domain.QuestionBankRepository, rng *rand.Rand) (QuestionBankService, error) {
	bank, err := repo.Load()
	if err != nil {
		logger.Get().Error("Failed to load question bank", zap.Error(err))
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	stats := bank.Stats()
	logger.Get().Info("Question bank loaded",
		zap.Int("sections", stats.Sections),
		zap.Int("groups", stats.Groups),
		zap.Int("questions", stats.Questions),
		zap.Int("lastID", bank.LastID))

	return &questionBankService{repo: repo, bank: bank, rng: rng}, nil
}

// NormalizeName is how section and theme names are stored: without outer
// spaces. Lookups expect names in this form.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// AddQuestionGroup implements QuestionBankService
func (s *questionBankService) AddQuestionGroup(section string, group domain.QuestionGroup) (domain.QuestionGroup, error) {
	section = NormalizeName(section)
	if section == "" {
		return domain.QuestionGroup{}, domain.NewInvalidInputError("section is required")
	}
	group.Theme = NormalizeName(group.Theme)
	if err := group.Validate(); err != nil {
		return domain.QuestionGroup{}, err
	}

	// Mutate a copy so a failed save leaves the loaded bank untouched.
	next := s.bank.Clone()
	stored := next.AddGroup(section, group)
	if err := s.repo.Save(next); err != nil {
		logger.Get().Error("Failed to save question bank",
			zap.String("section", section),
			zap.String("theme", group.Theme),
			zap.Error(err))
		return domain.QuestionGroup{}, domain.NewInternalError("failed to save question bank", err)
	}
	s.bank = next

	logger.Get().Info("Question group added",
		zap.Int("id", stored.ID),
		zap.String("section", section),
		zap.String("theme", stored.Theme),
		zap.Int("questions", len(stored.Questions)))
	return stored.Clone(), nil
}

// RandomSample implements QuestionBankService
func (s *questionBankService) RandomSample(n int) []domain.Question {
	all := s.bank.AllQuestions()
	if n >= len(all) {
		return all
	}
	return util.SampleN(s.rng, all, n)
}

// QuestionsForTheme implements QuestionBankService
func (s *questionBankService) QuestionsForTheme(section, theme string) ([]domain.QuestionGroup, error) {
	groups, ok := s.bank.GroupsByTheme(section, theme)
	if !ok {
		return nil, domain.NewSelectionNotFoundError(section, "")
	}
	return groups, nil
}

// Sections implements QuestionBankService
func (s *questionBankService) Sections() []string {
	return s.bank.Sections()
}

// Themes implements QuestionBankService
func (s *questionBankService) Themes(section string) ([]string, error) {
	themes, ok := s.bank.Themes(section)
	if !ok {
		return nil, domain.NewSelectionNotFoundError(section, "")
	}
	return themes, nil
}

// Stats implements QuestionBankService
func (s *questionBankService) Stats() domain.BankStats {
	return s.bank.Stats()
}

// LastID implements QuestionBankService
func (s *questionBankService) LastID() int {
	return s.bank.LastID
}
