package repository

import (
	"testing"
	"time"

	"quiz-console/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_LoadMissingFile(t *testing.T) {
	repo := NewJSONUserRepository(afero.NewMemMapFs(), "users.json")

	users, err := repo.Load()
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		users domain.UserStore
	}{
		{"empty store", domain.UserStore{}},
		{"single user", domain.UserStore{
			domain.NewUser("alice", "secret", domain.NewDate(1990, time.May, 17), false),
		}},
		{"several users", domain.UserStore{
			domain.NewUser("alice", "secret", domain.NewDate(1990, time.May, 17), false),
			domain.NewUser("root", "toor", domain.NewDate(1970, time.January, 1), true),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewJSONUserRepository(afero.NewMemMapFs(), "users.json")

			require.NoError(t, repo.Save(tt.users))
			loaded, err := repo.Load()
			require.NoError(t, err)

			assert.Equal(t, tt.users, loaded)
		})
	}
}

func TestUserRepository_ReadsLegacyDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `[{"Nickname":"bob","Password":"pw","DateOfBirth":"2001-09-11T00:00:00","IsAdmin":true}]`
	require.NoError(t, afero.WriteFile(fs, "users.json", []byte(doc), 0o644))

	users, err := NewJSONUserRepository(fs, "users.json").Load()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Nickname)
	assert.True(t, users[0].IsAdmin)
	assert.Equal(t, domain.NewDate(2001, time.September, 11), users[0].DateOfBirth)
}

func TestUserRepository_WritesLegacyDateFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewJSONUserRepository(fs, "users.json")
	require.NoError(t, repo.Save(domain.UserStore{
		domain.NewUser("bob", "pw", domain.NewDate(2001, time.September, 11), false),
	}))

	data, err := afero.ReadFile(fs, "users.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"DateOfBirth": "2001-09-11T00:00:00"`)
}

func TestUserRepository_CorruptDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "users.json", []byte(`{"Nickname":"bob"}`), 0o644))

	users, err := NewJSONUserRepository(fs, "users.json").Load()
	assert.Nil(t, users)
	assert.True(t, domain.IsCorruptData(err))
}
