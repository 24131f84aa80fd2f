package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout users type dates in.
const DateLayout = "2006-01-02"

// wireDateLayout is how dates are written to users.json.
const wireDateLayout = "2006-01-02T15:04:05"

var acceptedDateLayouts = []string{wireDateLayout, time.RFC3339, DateLayout}

// Date is a calendar date stored at UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, NewInvalidInputError(fmt.Sprintf("invalid date %q, expected yyyy-MM-dd", s))
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements the json.Marshaler interface
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(wireDateLayout))
}

// UnmarshalJSON accepts the legacy timestamp form, RFC 3339 and plain dates.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	return fmt.Errorf("unsupported date format %q", raw)
}

// User represents a registered quiz player
type User struct {
	Nickname    string `json:"Nickname"`
	Password    string `json:"Password"`
	DateOfBirth Date   `json:"DateOfBirth"`
	IsAdmin     bool   `json:"IsAdmin"`
}

// NewUser creates a new User instance
func NewUser(nickname, password string, dateOfBirth Date, isAdmin bool) User {
	return User{
		Nickname:    nickname,
		Password:    password,
		DateOfBirth: dateOfBirth,
		IsAdmin:     isAdmin,
	}
}

// Validate validates the user
func (u User) Validate() error {
	if strings.TrimSpace(u.Nickname) == "" {
		return NewInvalidInputError("nickname is required")
	}
	if u.Password == "" {
		return NewInvalidInputError("password is required")
	}
	return nil
}

// ChangePassword replaces the password in memory.
func (u *User) ChangePassword(newPassword string) {
	u.Password = newPassword
}

// ChangeDateOfBirth replaces the date of birth in memory.
func (u *User) ChangeDateOfBirth(newDate Date) {
	u.DateOfBirth = newDate
}

// UserStore is the ordered list of users persisted as one document.
type UserStore []User

// IndexOf returns the position of the user with nickname, or -1.
// Comparison is case-sensitive.
func (s UserStore) IndexOf(nickname string) int {
	for i := range s {
		if s[i].Nickname == nickname {
			return i
		}
	}
	return -1
}

// FindByCredentials returns the first user whose nickname and password both
// match exactly.
func (s UserStore) FindByCredentials(nickname, password string) (User, bool) {
	for _, u := range s {
		if u.Nickname == nickname && u.Password == password {
			return u, true
		}
	}
	return User{}, false
}

// Clone returns a copy of the store.
func (s UserStore) Clone() UserStore {
	out := make(UserStore, len(s))
	copy(out, s)
	return out
}
