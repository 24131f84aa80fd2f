package repository

import (
	"quiz-console/internal/domain"

	"github.com/spf13/afero"
)

// jsonQuestionBankRepository keeps the question bank in one JSON document.
type jsonQuestionBankRepository struct {
	fs   afero.Fs
	path string
}

// NewJSONQuestionBankRepository creates a repository for the bank stored at path.
func NewJSONQuestionBankRepository(fs afero.Fs, path string) domain.QuestionBankRepository {
	return &jsonQuestionBankRepository{fs: fs, path: path}
}

// Load implements domain.QuestionBankRepository
func (r *jsonQuestionBankRepository) Load() (*domain.QuestionBank, error) {
	bank := domain.NewQuestionBank()
	if _, err := readDocument(r.fs, r.path, bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// Save implements domain.QuestionBankRepository
func (r *jsonQuestionBankRepository) Save(bank *domain.QuestionBank) error {
	return writeDocument(r.fs, r.path, bank)
}
