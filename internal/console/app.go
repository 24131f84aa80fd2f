// Package console is the terminal front end of the quiz. It owns the session
// state machine and all prompts; every decision about data is delegated to
// the services.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"quiz-console/internal/domain"
	"quiz-console/internal/logger"
	"quiz-console/internal/service"
	"quiz-console/internal/validation"

	"go.uber.org/zap"
)

// State is the position of the session in its lifecycle.
type State int

const (
	StateLoggedOut State = iota
	StateLoggedIn
	StateQuizzing
	StateChangingProfile
	StateAddingQuestion
	StateExited
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateLoggedIn:
		return "logged_in"
	case StateQuizzing:
		return "quizzing"
	case StateChangingProfile:
		return "changing_profile"
	case StateAddingQuestion:
		return "adding_question"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// App drives one interactive session.
type App struct {
	users     service.UserService
	bank      service.QuestionBankService
	quiz      service.QuizService
	prompt    *prompter
	report    domain.Reporter
	validator *validation.Validator

	state State
	user  *domain.User
}

// NewApp wires the services to a terminal. report may be nil, in which case
// problems are printed in red to out.
func NewApp(users service.UserService, bank service.QuestionBankService, quiz service.QuizService, in io.Reader, out io.Writer, report domain.Reporter) *App {
	if report == nil {
		report = ColorReporter(out)
	}
	return &App{
		users:     users,
		bank:      bank,
		quiz:      quiz,
		prompt:    newPrompter(in, out),
		report:    report,
		validator: validation.NewValidator(),
		state:     StateLoggedOut,
	}
}

// ColorReporter prints problems as red "Error: ..." lines.
func ColorReporter(out io.Writer) domain.Reporter {
	return func(kind domain.ErrorCode, message string) {
		fmt.Fprintf(out, "\033[31mError: %s\033[0m\n", message)
	}
}

// State returns the current lifecycle state.
func (a *App) State() State {
	return a.state
}

// Run processes menus until the player quits or input ends.
func (a *App) Run(ctx context.Context) error {
	for a.state != StateExited {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if a.user == nil {
			err = a.loginMenu()
		} else {
			err = a.mainMenu(ctx)
		}
		if errors.Is(err, io.EOF) {
			a.transition(StateExited)
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) transition(next State) {
	logger.Get().Debug("Session state change", zap.Stringer("from", a.state), zap.Stringer("to", next))
	a.state = next
}

func (a *App) loginMenu() error {
	p := a.prompt
	p.println("Choose an action:")
	p.println("1. Log in")
	p.println("2. Register")
	p.println("3. Quit")
	choice, err := p.intInRange("> ", 1, 3)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		return a.login()
	case 2:
		return a.register()
	default:
		a.transition(StateExited)
		return nil
	}
}

func (a *App) login() error {
	p := a.prompt
	nickname, err := p.line("Enter your nickname: ")
	if err != nil {
		return err
	}
	password, err := p.line("Enter your password: ")
	if err != nil {
		return err
	}

	user, err := a.users.FindByCredentials(nickname, password)
	if err != nil {
		a.report(domain.CodeOf(err), "Wrong nickname or password.")
		return nil
	}
	a.user = &user
	a.transition(StateLoggedIn)
	p.printf("Welcome, %s!\n", user.Nickname)
	return nil
}

func (a *App) register() error {
	p := a.prompt
	nickname, err := p.nonEmpty("Enter a new nickname: ")
	if err != nil {
		return err
	}
	password, err := p.nonEmpty("Enter a password: ")
	if err != nil {
		return err
	}
	if err := a.validator.ValidateRegistration(nickname, password); err != nil {
		a.reportErr(err)
		return nil
	}
	dob, err := p.date("Enter your date of birth (yyyy-MM-dd): ")
	if err != nil {
		return err
	}

	if _, err := a.users.Register(nickname, password, dob); err != nil {
		a.reportErr(err)
		return nil
	}
	p.println("User registered successfully.")
	return nil
}

func (a *App) mainMenu(ctx context.Context) error {
	p := a.prompt
	p.println("1. Take a quiz")
	p.println("2. Change password")
	p.println("3. Change date of birth")
	p.println("4. Add questions")
	p.println("5. Show my results")
	p.println("6. Log out")
	choice, err := p.intInRange("> ", 1, 6)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		return a.runQuiz(ctx)
	case 2:
		return a.changePassword()
	case 3:
		return a.changeDateOfBirth()
	case 4:
		return a.addQuestions()
	case 5:
		return a.showHistory(ctx)
	default:
		a.user = nil
		a.transition(StateLoggedOut)
		return nil
	}
}

func (a *App) reportErr(err error) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		a.report(domainErr.Code, domainErr.Message)
		return
	}
	a.report(domain.ErrInternal, err.Error())
}
