package service

import (
	"quiz-console/internal/domain"
	"quiz-console/internal/logger"

	"go.uber.org/zap"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// Register builds a user from the registration form and adds it.
	Register(nickname, password string, dateOfBirth domain.Date) (domain.User, error)

	// Add appends user and saves the store. A taken nickname is rejected
	// with a DUPLICATE_NICKNAME error and the store stays unchanged.
	Add(user domain.User) error

	// FindByCredentials returns the user whose nickname and password match exactly.
	FindByCredentials(nickname, password string) (domain.User, error)

	// ChangePassword updates user in memory and in the store.
	ChangePassword(user *domain.User, newPassword string) error

	// ChangeDateOfBirth updates user in memory and in the store.
	ChangeDateOfBirth(user *domain.User, newDate domain.Date) error

	Users() domain.UserStore
}

// AdminPolicy decides whether a newly registered nickname gets admin rights.
type AdminPolicy func(nickname string) bool

type userServiceImpl struct {
	repo    domain.UserRepository
	users   domain.UserStore
	isAdmin AdminPolicy
}

// NewUserService loads the user store and returns a service around it.
// isAdmin may be nil, meaning nobody registers as an admin.
func NewUserService(repo domain.UserRepository, isAdmin AdminPolicy) (UserService, error) {
	users, err := repo.Load()
	if err != nil {
		logger.Get().Error("Failed to load users", zap.Error(err))
		return nil, err
	}
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	logger.Get().Info("Users loaded", zap.Int("count", len(users)))
	return &userServiceImpl{repo: repo, users: users, isAdmin: isAdmin}, nil
}

// Register implements UserService
func (s *userServiceImpl) Register(nickname, password string, dateOfBirth domain.Date) (domain.User, error) {
	user := domain.NewUser(nickname, password, dateOfBirth, s.isAdmin(nickname))
	if err := s.Add(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Add implements UserService
func (s *userServiceImpl) Add(user domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if s.users.IndexOf(user.Nickname) >= 0 {
		logger.Get().Info("Registration rejected, nickname taken", zap.String("nickname", user.Nickname))
		return domain.NewDuplicateNicknameError(user.Nickname)
	}

	next := append(s.users.Clone(), user)
	if err := s.save(next); err != nil {
		return err
	}
	logger.Get().Info("User registered", zap.String("nickname", user.Nickname), zap.Bool("admin", user.IsAdmin))
	return nil
}

// FindByCredentials implements UserService
func (s *userServiceImpl) FindByCredentials(nickname, password string) (domain.User, error) {
	user, ok := s.users.FindByCredentials(nickname, password)
	if !ok {
		logger.Get().Debug("Login failed", zap.String("nickname", nickname))
		return domain.User{}, domain.NewNotFoundError("invalid nickname or password")
	}
	return user, nil
}

// ChangePassword implements UserService
func (s *userServiceImpl) ChangePassword(user *domain.User, newPassword string) error {
	if newPassword == "" {
		return domain.NewInvalidInputError("password is required")
	}
	return s.update(user, func(u *domain.User) { u.ChangePassword(newPassword) })
}

// ChangeDateOfBirth implements UserService
func (s *userServiceImpl) ChangeDateOfBirth(user *domain.User, newDate domain.Date) error {
	return s.update(user, func(u *domain.User) { u.ChangeDateOfBirth(newDate) })
}

// Users implements UserService
func (s *userServiceImpl) Users() domain.UserStore {
	return s.users.Clone()
}

// update applies mutate to the stored record of user, saves the store and
// then mirrors the change onto the caller's copy.
func (s *userServiceImpl) update(user *domain.User, mutate func(u *domain.User)) error {
	if user == nil {
		return domain.NewInvalidInputError("user is required")
	}
	idx := s.users.IndexOf(user.Nickname)
	if idx < 0 {
		return domain.NewNotFoundError("user not found: " + user.Nickname)
	}

	next := s.users.Clone()
	mutate(&next[idx])
	if err := s.save(next); err != nil {
		return err
	}
	*user = next[idx]
	logger.Get().Info("User profile updated", zap.String("nickname", user.Nickname))
	return nil
}

func (s *userServiceImpl) save(next domain.UserStore) error {
	if err := s.repo.Save(next); err != nil {
		logger.Get().Error("Failed to save users", zap.Error(err))
		return domain.NewInternalError("failed to save users", err)
	}
	s.users = next
	return nil
}
