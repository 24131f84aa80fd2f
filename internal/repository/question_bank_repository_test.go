package repository

import (
	"testing"

	"quiz-console/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBank() *domain.QuestionBank {
	bank := domain.NewQuestionBank()
	bank.AddGroup("Math", domain.QuestionGroup{
		Theme: "Arithmetic",
		Questions: []domain.Question{
			domain.NewQuestion("2+2?", domain.Answer{Text: "4", IsCorrect: true}, domain.Answer{Text: "5"}),
			domain.NewQuestion("3*3?", domain.Answer{Text: "6"}, domain.Answer{Text: "9", IsCorrect: true}),
		},
	})
	bank.AddGroup("History", domain.QuestionGroup{
		Theme: "Rome",
		Questions: []domain.Question{
			domain.NewQuestion("Founded?", domain.Answer{Text: "753 BC", IsCorrect: true}),
		},
	})
	bank.AddGroup("Math", domain.QuestionGroup{
		Theme: "Geometry",
		Questions: []domain.Question{
			domain.NewQuestion("Triangle angles sum?", domain.Answer{Text: "180", IsCorrect: true}, domain.Answer{Text: "360"}),
		},
	})
	return bank
}

func singleGroupBank() *domain.QuestionBank {
	bank := domain.NewQuestionBank()
	bank.AddGroup("History", domain.QuestionGroup{
		Theme: "Rome",
		Questions: []domain.Question{
			domain.NewQuestion("Founded?", domain.Answer{Text: "753 BC", IsCorrect: true}, domain.Answer{Text: "1066"}),
		},
	})
	return bank
}

func TestQuestionBankRepository_LoadMissingFile(t *testing.T) {
	repo := NewJSONQuestionBankRepository(afero.NewMemMapFs(), "questions.json")

	bank, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, bank.LastID)
	assert.Empty(t, bank.Sections())
}

func TestQuestionBankRepository_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		bank *domain.QuestionBank
	}{
		{"empty bank", domain.NewQuestionBank()},
		{"single group bank", singleGroupBank()},
		{"multi-section multi-theme bank", sampleBank()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			repo := NewJSONQuestionBankRepository(fs, "data/questions.json")

			require.NoError(t, repo.Save(tt.bank))
			loaded, err := repo.Load()
			require.NoError(t, err)

			assert.Equal(t, tt.bank, loaded)
		})
	}
}

func TestQuestionBankRepository_KeepsSectionOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `{"LastID":3,"QuestionsBySection":{
		"Zoology":[{"ID":1,"Theme":"Cats","Questions":[{"QuestionText":"Meow?","Answers":[{"Text":"yes","IsCorrect":true}]}]}],
		"Art":[{"ID":2,"Theme":"Paint","Questions":[]}],
		"Music":[{"ID":3,"Theme":"Jazz","Questions":[]}]
	},"UserAnswers":{}}`
	require.NoError(t, afero.WriteFile(fs, "questions.json", []byte(doc), 0o644))

	bank, err := NewJSONQuestionBankRepository(fs, "questions.json").Load()
	require.NoError(t, err)

	assert.Equal(t, 3, bank.LastID)
	assert.Equal(t, []string{"Zoology", "Art", "Music"}, bank.Sections())
}

func TestQuestionBankRepository_CorruptDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "questions.json", []byte(`{"LastID": "three"`), 0o644))

	bank, err := NewJSONQuestionBankRepository(fs, "questions.json").Load()
	assert.Nil(t, bank)
	assert.True(t, domain.IsCorruptData(err))
}

func TestQuestionBankRepository_BlankFileIsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "questions.json", []byte("  \n"), 0o644))

	bank, err := NewJSONQuestionBankRepository(fs, "questions.json").Load()
	require.NoError(t, err)
	assert.Equal(t, domain.NewQuestionBank(), bank)
}

func TestQuestionBankRepository_SaveLeavesNoTempFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewJSONQuestionBankRepository(fs, "data/questions.json")

	require.NoError(t, repo.Save(sampleBank()))
	require.NoError(t, repo.Save(sampleBank()))

	entries, err := afero.ReadDir(fs, "data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "questions.json", entries[0].Name())
}
