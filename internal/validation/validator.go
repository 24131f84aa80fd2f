package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"quiz-console/internal/domain"
)

const (
	maxNicknameLength = 50
	maxPasswordLength = 100
	maxNameLength     = 100
)

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator checks terminal input before it reaches the services
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegistration validates the registration form
func (v *Validator) ValidateRegistration(nickname, password string) error {
	if err := validateName("nickname", nickname, maxNicknameLength); err != nil {
		return err
	}
	if password == "" {
		return domain.NewInvalidInputError("password is required")
	}
	if utf8.RuneCountInString(password) > maxPasswordLength {
		return domain.NewInvalidInputError(fmt.Sprintf("password must be at most %d characters", maxPasswordLength))
	}
	return nil
}

// ValidateGroupNames validates the section and theme of a new question group.
// Names are checked as they will be stored, without outer spaces.
func (v *Validator) ValidateGroupNames(section, theme string) error {
	if err := validateName("section", strings.TrimSpace(section), maxNameLength); err != nil {
		return err
	}
	return validateName("theme", strings.TrimSpace(theme), maxNameLength)
}

// IsValidULID checks if the string is a valid ULID format
func IsValidULID(s string) bool {
	return validULID.MatchString(s)
}

func validateName(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewInvalidInputError(field + " is required")
	}
	if strings.TrimSpace(value) != value {
		return domain.NewInvalidInputError(field + " must not start or end with spaces")
	}
	if utf8.RuneCountInString(value) > max {
		return domain.NewInvalidInputError(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	if strings.IndexFunc(value, unicode.IsControl) >= 0 {
		return domain.NewInvalidInputError(field + " contains control characters")
	}
	return nil
}
