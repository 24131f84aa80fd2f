package console

import (
	"context"
	"fmt"

	"quiz-console/internal/domain"
	"quiz-console/internal/service"
)

// runQuiz asks the player for a source and walks through its questions.
func (a *App) runQuiz(ctx context.Context) error {
	a.transition(StateQuizzing)
	defer a.transition(StateLoggedIn)

	choice, ok, err := a.chooseSource()
	if err != nil || !ok {
		return err
	}

	source, err := a.quiz.SelectQuizSource(choice)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	if len(source.Questions) == 0 {
		a.report(domain.ErrNotFound, "There are no questions to ask yet.")
		return nil
	}

	p := a.prompt
	p.printf("Quiz: %s (%d questions)\n", source.Label, len(source.Questions))
	selections := make([]int, 0, len(source.Questions))
	for i, q := range source.Questions {
		p.printf("\n%d. %s\n", i+1, q.Text)
		for j, ans := range q.Answers {
			p.printf("  %d) %s\n", j+1, ans.Text)
		}
		sel, err := p.intInRange("Your answer: ", 1, len(q.Answers))
		if err != nil {
			return err
		}
		correct, err := a.quiz.CheckAnswer(q, sel)
		if err != nil {
			a.reportErr(err)
			return nil
		}
		if correct {
			p.println("Correct!")
		} else {
			p.println("Wrong!")
		}
		selections = append(selections, sel)
	}

	score, err := a.quiz.FinishSession(ctx, a.user.Nickname, source, selections)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	p.printf("\nYou answered %d of %d questions correctly.\n", score.Correct, score.Total)
	return nil
}

// chooseSource shows the random option followed by the sections, then the
// themes of the chosen section. ok is false when the bank offers nothing.
func (a *App) chooseSource() (domain.QuizChoice, bool, error) {
	p := a.prompt
	sections := a.bank.Sections()

	p.println("Choose a quiz:")
	p.println("1. Random questions from all sections")
	for i, name := range sections {
		p.printf("%d. %s\n", i+2, name)
	}
	pick, err := p.intInRange("> ", 1, len(sections)+1)
	if err != nil {
		return domain.QuizChoice{}, false, err
	}
	if pick == 1 {
		return domain.RandomChoice(), true, nil
	}

	section := sections[pick-2]
	themes, err := a.bank.Themes(section)
	if err != nil {
		a.reportErr(err)
		return domain.QuizChoice{}, false, nil
	}
	if len(themes) == 0 {
		a.report(domain.ErrNotFound, fmt.Sprintf("Section %s has no themes.", section))
		return domain.QuizChoice{}, false, nil
	}

	p.println("Choose a theme:")
	for i, theme := range themes {
		p.printf("%d. %s\n", i+1, theme)
	}
	pick, err = p.intInRange("> ", 1, len(themes))
	if err != nil {
		return domain.QuizChoice{}, false, err
	}
	return domain.ThemeChoice(section, themes[pick-1]), true, nil
}

func (a *App) changePassword() error {
	a.transition(StateChangingProfile)
	defer a.transition(StateLoggedIn)

	password, err := a.prompt.nonEmpty("Enter a new password: ")
	if err != nil {
		return err
	}
	if err := a.users.ChangePassword(a.user, password); err != nil {
		a.reportErr(err)
		return nil
	}
	a.prompt.println("Password changed.")
	return nil
}

func (a *App) changeDateOfBirth() error {
	a.transition(StateChangingProfile)
	defer a.transition(StateLoggedIn)

	dob, err := a.prompt.date("Enter a new date of birth (yyyy-MM-dd): ")
	if err != nil {
		return err
	}
	if err := a.users.ChangeDateOfBirth(a.user, dob); err != nil {
		a.reportErr(err)
		return nil
	}
	a.prompt.println("Date of birth changed.")
	return nil
}

// addQuestions collects one themed group from an admin and stores it.
func (a *App) addQuestions() error {
	if !a.user.IsAdmin {
		a.reportErr(domain.NewForbiddenError("Only administrators can add questions."))
		return nil
	}
	a.transition(StateAddingQuestion)
	defer a.transition(StateLoggedIn)

	p := a.prompt
	section, err := p.nonEmpty("Section: ")
	if err != nil {
		return err
	}
	theme, err := p.nonEmpty("Theme: ")
	if err != nil {
		return err
	}
	if err := a.validator.ValidateGroupNames(section, theme); err != nil {
		a.reportErr(err)
		return nil
	}
	count, err := p.intInRange("How many questions? ", 1, 100)
	if err != nil {
		return err
	}

	group := domain.QuestionGroup{Theme: theme}
	for i := 0; i < count; i++ {
		q, err := a.readQuestion(i + 1)
		if err != nil {
			return err
		}
		group.Questions = append(group.Questions, q)
	}

	stored, err := a.bank.AddQuestionGroup(section, group)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	p.printf("Added %d questions to %s / %s (group %d).\n", len(stored.Questions), service.NormalizeName(section), stored.Theme, stored.ID)
	return nil
}

func (a *App) readQuestion(n int) (domain.Question, error) {
	p := a.prompt
	text, err := p.nonEmpty(fmt.Sprintf("Question %d text: ", n))
	if err != nil {
		return domain.Question{}, err
	}
	answers, err := p.intInRange("How many answers? ", 1, 10)
	if err != nil {
		return domain.Question{}, err
	}

	q := domain.NewQuestion(text)
	for i := 0; i < answers; i++ {
		answer, err := p.nonEmpty(fmt.Sprintf("Answer %d: ", i+1))
		if err != nil {
			return domain.Question{}, err
		}
		correct, err := p.boolean("Is it correct? (true/false): ")
		if err != nil {
			return domain.Question{}, err
		}
		q.Answers = append(q.Answers, domain.Answer{Text: answer, IsCorrect: correct})
	}
	return q, nil
}

func (a *App) showHistory(ctx context.Context) error {
	attempts, err := a.quiz.History(ctx, a.user.Nickname)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	if len(attempts) == 0 {
		a.prompt.println("No finished quizzes yet.")
		return nil
	}
	for _, at := range attempts {
		a.prompt.printf("%s  %-30s %d/%d\n", at.FinishedAt.Format("2006-01-02 15:04"), at.Source, at.Correct, at.Total)
	}
	return nil
}
