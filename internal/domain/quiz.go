package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is one selectable option of a question.
type Answer struct {
	Text      string `json:"Text"`
	IsCorrect bool   `json:"IsCorrect"`
}

// Question represents a multiple-choice question
type Question struct {
	Text    string   `json:"QuestionText"`
	Answers []Answer `json:"Answers"`
}

// NewQuestion creates a new Question instance
func NewQuestion(text string, answers ...Answer) Question {
	return Question{Text: text, Answers: answers}
}

// Validate validates the question
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Answers) == 0 {
		return NewInvalidInputError(fmt.Sprintf("question %q needs at least one answer", q.Text))
	}
	return nil
}

// CorrectIndex returns the 1-based position of the first correct answer,
// or 0 when no answer is marked correct.
func (q Question) CorrectIndex() int {
	for i, a := range q.Answers {
		if a.IsCorrect {
			return i + 1
		}
	}
	return 0
}

// Clone returns a deep copy; sessions never share answers with the bank.
func (q Question) Clone() Question {
	answers := make([]Answer, len(q.Answers))
	copy(answers, q.Answers)
	return Question{Text: q.Text, Answers: answers}
}

// QuestionGroup is a themed run of questions inside a section.
type QuestionGroup struct {
	ID        int        `json:"ID"`
	Theme     string     `json:"Theme"`
	Questions []Question `json:"Questions"`
}

// Validate validates the group
func (g QuestionGroup) Validate() error {
	if strings.TrimSpace(g.Theme) == "" {
		return NewInvalidInputError("theme is required")
	}
	if len(g.Questions) == 0 {
		return NewInvalidInputError("at least one question is required")
	}
	for _, q := range g.Questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the group.
func (g QuestionGroup) Clone() QuestionGroup {
	questions := make([]Question, len(g.Questions))
	for i, q := range g.Questions {
		questions[i] = q.Clone()
	}
	return QuestionGroup{ID: g.ID, Theme: g.Theme, Questions: questions}
}

// Sections maps a section name to its groups and remembers insertion order.
// On the wire it is a plain JSON object; document order is kept on decode.
type Sections struct {
	order  []string
	groups map[string][]QuestionGroup
}

// Names returns section names in insertion order.
func (s *Sections) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of sections.
func (s *Sections) Len() int {
	return len(s.order)
}

// Groups returns the groups stored under name.
func (s *Sections) Groups(name string) ([]QuestionGroup, bool) {
	groups, ok := s.groups[name]
	return groups, ok
}

// Append adds group at the end of the named section, creating it if needed.
func (s *Sections) Append(name string, group QuestionGroup) {
	if s.groups == nil {
		s.groups = make(map[string][]QuestionGroup)
	}
	if _, ok := s.groups[name]; !ok {
		s.order = append(s.order, name)
		s.groups[name] = []QuestionGroup{}
	}
	s.groups[name] = append(s.groups[name], group)
}

// Clone returns a deep copy of all sections.
func (s *Sections) Clone() Sections {
	out := Sections{groups: make(map[string][]QuestionGroup, len(s.groups))}
	if len(s.order) > 0 {
		out.order = make([]string, len(s.order))
		copy(out.order, s.order)
	}
	for name, groups := range s.groups {
		cloned := make([]QuestionGroup, len(groups))
		for i, g := range groups {
			cloned[i] = g.Clone()
		}
		out.groups[name] = cloned
	}
	return out
}

// MarshalJSON writes the sections as an object in insertion order.
func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		groups := s.groups[name]
		if groups == nil {
			groups = []QuestionGroup{}
		}
		value, err := json.Marshal(groups)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the document order of its keys.
func (s *Sections) UnmarshalJSON(data []byte) error {
	s.order = nil
	s.groups = make(map[string][]QuestionGroup)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("sections: expected string key, got %v", keyTok)
		}
		var groups []QuestionGroup
		if err := dec.Decode(&groups); err != nil {
			return fmt.Errorf("sections: section %q: %w", name, err)
		}
		if groups == nil {
			groups = []QuestionGroup{}
		}
		if _, seen := s.groups[name]; !seen {
			s.order = append(s.order, name)
		}
		s.groups[name] = groups
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// QuestionBank is the whole persisted set of sections, themes and questions.
type QuestionBank struct {
	LastID             int      `json:"LastID"`
	QuestionsBySection Sections `json:"QuestionsBySection"`
}

// NewQuestionBank creates an empty bank
func NewQuestionBank() *QuestionBank {
	return &QuestionBank{
		QuestionsBySection: Sections{groups: make(map[string][]QuestionGroup)},
	}
}

// AddGroup assigns the next ID to group and appends it under section.
// It returns the stored copy.
func (b *QuestionBank) AddGroup(section string, group QuestionGroup) QuestionGroup {
	stored := group.Clone()
	stored.ID = b.LastID + 1
	b.QuestionsBySection.Append(section, stored)
	b.LastID++
	return stored
}

// Sections returns section names in insertion order.
func (b *QuestionBank) Sections() []string {
	return b.QuestionsBySection.Names()
}

// GroupsByTheme returns the groups of section whose theme equals theme.
// ok is false when the section does not exist.
func (b *QuestionBank) GroupsByTheme(section, theme string) ([]QuestionGroup, bool) {
	groups, ok := b.QuestionsBySection.Groups(section)
	if !ok {
		return nil, false
	}
	matched := make([]QuestionGroup, 0, len(groups))
	for _, g := range groups {
		if g.Theme == theme {
			matched = append(matched, g.Clone())
		}
	}
	return matched, true
}

// Themes returns the distinct themes of section in first-seen order.
func (b *QuestionBank) Themes(section string) ([]string, bool) {
	groups, ok := b.QuestionsBySection.Groups(section)
	if !ok {
		return nil, false
	}
	seen := make(map[string]struct{}, len(groups))
	themes := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, dup := seen[g.Theme]; dup {
			continue
		}
		seen[g.Theme] = struct{}{}
		themes = append(themes, g.Theme)
	}
	return themes, true
}

// AllQuestions flattens every question of every group, section by section.
func (b *QuestionBank) AllQuestions() []Question {
	var all []Question
	for _, name := range b.QuestionsBySection.order {
		for _, g := range b.QuestionsBySection.groups[name] {
			for _, q := range g.Questions {
				all = append(all, q.Clone())
			}
		}
	}
	return all
}

// Clone returns a deep copy of the bank.
func (b *QuestionBank) Clone() *QuestionBank {
	return &QuestionBank{
		LastID:             b.LastID,
		QuestionsBySection: b.QuestionsBySection.Clone(),
	}
}

// BankStats summarises the bank contents.
type BankStats struct {
	Sections  int
	Groups    int
	Questions int
}

// Stats counts sections, groups and questions.
func (b *QuestionBank) Stats() BankStats {
	stats := BankStats{Sections: b.QuestionsBySection.Len()}
	for _, groups := range b.QuestionsBySection.groups {
		stats.Groups += len(groups)
		for _, g := range groups {
			stats.Questions += len(g.Questions)
		}
	}
	return stats
}
