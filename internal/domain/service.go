package domain

// QuestionBankRepository loads and saves the whole question bank document.
type QuestionBankRepository interface {
	// Load returns an empty bank when no document exists yet.
	Load() (*QuestionBank, error)

	// Save replaces the whole document.
	Save(bank *QuestionBank) error
}

// UserRepository loads and saves the whole user document.
type UserRepository interface {
	// Load returns an empty store when no document exists yet.
	Load() (UserStore, error)

	// Save replaces the whole document.
	Save(users UserStore) error
}
