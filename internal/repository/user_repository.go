package repository

import (
	"quiz-console/internal/domain"

	"github.com/spf13/afero"
)

// jsonUserRepository keeps all users in one JSON array document.
type jsonUserRepository struct {
	fs   afero.Fs
	path string
}

// NewJSONUserRepository creates a repository for the users stored at path.
func NewJSONUserRepository(fs afero.Fs, path string) domain.UserRepository {
	return &jsonUserRepository{fs: fs, path: path}
}

// Load implements domain.UserRepository
func (r *jsonUserRepository) Load() (domain.UserStore, error) {
	var users domain.UserStore
	found, err := readDocument(r.fs, r.path, &users)
	if err != nil {
		return nil, err
	}
	if !found || users == nil {
		return domain.UserStore{}, nil
	}
	return users, nil
}

// Save implements domain.UserRepository
func (r *jsonUserRepository) Save(users domain.UserStore) error {
	if users == nil {
		users = domain.UserStore{}
	}
	return writeDocument(r.fs, r.path, users)
}
