package auth

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted for a cook.
const MinPasswordLength = 8

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

var (
	ErrPasswordTooShort   = errors.New("password must contain at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must contain at most 72 bytes")
	ErrPasswordNumeric    = errors.New("password is entirely numeric")
	ErrPasswordCommon     = errors.New("password is too common")
	ErrPasswordSimilar    = errors.New("password is too similar to the username")
	ErrPasswordMismatch   = errors.New("the two password fields didn't match")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"sunshine":    {},
	"letmein1":    {},
	"football":    {},
	"welcome1":    {},
	"kitchen1":    {},
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a bcrypt hash against a plaintext candidate.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ValidateNewPassword applies the confirmation and strength rules used when
// creating a cook account. It returns every failed rule.
func ValidateNewPassword(username, password, confirm string) []error {
	if password != confirm {
		return []error{ErrPasswordMismatch}
	}
	var problems []error
	if len(password) < MinPasswordLength {
		problems = append(problems, ErrPasswordTooShort)
	}
	if len(password) > MaxPasswordBytes {
		problems = append(problems, ErrPasswordTooLong)
	}
	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		problems = append(problems, ErrPasswordNumeric)
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		problems = append(problems, ErrPasswordCommon)
	}
	user := strings.ToLower(strings.TrimSpace(username))
	if len(user) >= 3 && strings.Contains(strings.ToLower(password), user) {
		problems = append(problems, ErrPasswordSimilar)
	}
	return problems
}
