package domain

import "time"

// Attempt is one finished quiz session of a user.
type Attempt struct {
	ID         string    `json:"id"`
	Nickname   string    `json:"nickname"`
	Source     string    `json:"source"`
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	FinishedAt time.Time `json:"finished_at"`
}

// SessionScore is the outcome of scoring a quiz session.
type SessionScore struct {
	Correct int
	Total   int
}

// QuizChoice is what the player picked from the quiz menu: either the random
// cross-section sample or a section/theme pair.
type QuizChoice struct {
	Random  bool
	Section string
	Theme   string
}

// RandomChoice selects the random cross-section sample.
func RandomChoice() QuizChoice {
	return QuizChoice{Random: true}
}

// ThemeChoice selects the questions of one theme in a section.
func ThemeChoice(section, theme string) QuizChoice {
	return QuizChoice{Section: section, Theme: theme}
}

// QuizSource is a resolved quiz: a label and the copied questions to ask.
type QuizSource struct {
	Label     string
	Questions []Question
}
