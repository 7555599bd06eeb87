package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fernandoludvig/finance-api/internal/repository"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	birthdayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	colorPattern    = regexp.MustCompile(`^#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})$`)
)

const minPasswordLength = 6

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return invalid("email", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return invalid("password", "Password is required")
	}
	if len(password) < minPasswordLength {
		return invalid("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	return nil
}

// validateBirthday accepts YYYY-MM-DD strings that name a real calendar day.
func validateBirthday(birthday string) error {
	if !birthdayPattern.MatchString(birthday) {
		return invalid("birthday", "Birthday must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(time.DateOnly, birthday); err != nil {
		return invalid("birthday", "Birthday is not a valid date")
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, invalid("date", "Invalid date format")
	}
	return t, nil
}

// mapRepoErr turns repository sentinels into the service's own.
func mapRepoErr(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repository.ErrDuplicate) && duplicate != nil:
		return duplicate
	default:
		return err
	}
}
