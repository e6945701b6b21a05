package validation

import (
	"regexp"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Username pattern - letters, digits, underscore and hyphen
	UsernamePattern = `^[a-zA-Z0-9_\-]+$`

	// Password length bounds
	PasswordMinLength = 8
	PasswordMaxLength = 64

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Username length bounds
	UsernameMinLength = 3
	UsernameMaxLength = 30
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// ValidEmail reports whether the value looks like an email address
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// ValidUsername reports whether the value is an acceptable username
func ValidUsername(username string) bool {
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return false
	}
	return CompiledPatterns.Username.MatchString(username)
}

// ValidName reports whether an optional display name is within the
// length bounds. Empty values are accepted; names are not required.
func ValidName(name string) bool {
	if name == "" {
		return true
	}
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}

// PasswordIssue names the first policy rule a candidate password breaks
type PasswordIssue string

const (
	PasswordOK           PasswordIssue = ""
	PasswordTooShort     PasswordIssue = "password is too short"
	PasswordTooLong      PasswordIssue = "password is too long"
	PasswordNoUppercase  PasswordIssue = "password must contain an uppercase letter"
	PasswordNoLowercase  PasswordIssue = "password must contain a lowercase letter"
	PasswordNoDigit      PasswordIssue = "password must contain a digit"
	PasswordNoPunctation PasswordIssue = "password must contain a punctuation character"
)

// CheckPassword validates a candidate password against the complexity
// policy: length bounds plus at least one uppercase letter, lowercase
// letter, digit and punctuation character.
func CheckPassword(password string) PasswordIssue {
	if len(password) < PasswordMinLength {
		return PasswordTooShort
	}
	if len(password) > PasswordMaxLength {
		return PasswordTooLong
	}

	var hasUpper, hasLower, hasDigit, hasPunct bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasPunct = true
		}
	}

	switch {
	case !hasUpper:
		return PasswordNoUppercase
	case !hasLower:
		return PasswordNoLowercase
	case !hasDigit:
		return PasswordNoDigit
	case !hasPunct:
		return PasswordNoPunctation
	}

	return PasswordOK
}
