// Package seed imports question groups from a YAML seed document.
package seed

import (
	"errors"
	"fmt"
	"io"

	"quiz-console/internal/domain"
	"quiz-console/internal/logger"
	"quiz-console/internal/service"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SeedAnswer defines an answer option in the seed file.
type SeedAnswer struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// SeedQuestion defines a question in the seed file.
type SeedQuestion struct {
	Text    string       `yaml:"text"`
	Answers []SeedAnswer `yaml:"answers"`
}

// SeedTheme defines a themed group of questions in the seed file.
type SeedTheme struct {
	Theme     string         `yaml:"theme"`
	Questions []SeedQuestion `yaml:"questions"`
}

// SeedSection defines a section in the seed file.
type SeedSection struct {
	Name   string      `yaml:"name"`
	Themes []SeedTheme `yaml:"themes"`
}

// Document is the root of the seed file.
type Document struct {
	Sections []SeedSection `yaml:"sections"`
}

// Result counts what Apply did.
type Result struct {
	GroupsAdded   int
	GroupsSkipped int
	Questions     int
}

// Load decodes a seed document. Unknown keys are rejected so typos in the
// seed file do not silently drop questions.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}
		return nil, domain.NewError(domain.ErrCorruptData, "failed to parse seed document", err)
	}
	return &doc, nil
}

// Group converts a seed theme into a question group.
func (t SeedTheme) Group() domain.QuestionGroup {
	group := domain.QuestionGroup{Theme: t.Theme}
	for _, sq := range t.Questions {
		q := domain.Question{Text: sq.Text}
		for _, sa := range sq.Answers {
			q.Answers = append(q.Answers, domain.Answer{Text: sa.Text, IsCorrect: sa.Correct})
		}
		group.Questions = append(group.Questions, q)
	}
	return group
}

// Apply adds every theme of doc to bank as a new question group. Themes that
// already exist in their section are skipped, so re-running a seed is safe.
func Apply(bank service.QuestionBankService, doc *Document) (Result, error) {
	log := logger.Get()
	var res Result

	for _, section := range doc.Sections {
		name := service.NormalizeName(section.Name)
		existing := map[string]bool{}
		if themes, err := bank.Themes(name); err == nil {
			for _, th := range themes {
				existing[th] = true
			}
		}

		for _, theme := range section.Themes {
			themeName := service.NormalizeName(theme.Theme)
			if existing[themeName] {
				log.Info("Theme exists, skipping", zap.String("section", name), zap.String("theme", themeName))
				res.GroupsSkipped++
				continue
			}

			stored, err := bank.AddQuestionGroup(name, theme.Group())
			if err != nil {
				return res, fmt.Errorf("section %q theme %q: %w", name, themeName, err)
			}
			existing[stored.Theme] = true
			res.GroupsAdded++
			res.Questions += len(stored.Questions)
			log.Info("Seeded question group",
				zap.Int("id", stored.ID),
				zap.String("section", name),
				zap.String("theme", stored.Theme))
		}
	}
	return res, nil
}
