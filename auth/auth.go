// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/danielhkuo/transit-routes/models"
)

// Minimum credential lengths accepted before a login is attempted
const (
	MinUsernameLen = 3
	MinPasswordLen = 4
)

const (
	msgRequired = "Required"
	msgTooShort = "Too short"
)

var (
	ErrNoExpiry     = errors.New("token has no expiry")
	ErrInvalidToken = errors.New("invalid token format")
)

// ValidationErrors maps a field name to its problem
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, v[f])
	}
	return strings.Join(parts, "; ")
}

// ValidateCredentials checks the login form before it is sent
func ValidateCredentials(creds models.LoginCredentials) error {
	errs := ValidationErrors{}

	if msg := checkField(creds.Username, MinUsernameLen); msg != "" {
		errs["username"] = msg
	}
	if msg := checkField(creds.Password, MinPasswordLen); msg != "" {
		errs["password"] = msg
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkField(value string, minLen int) string {
	if strings.TrimSpace(value) == "" {
		return msgRequired
	}
	if utf8.RuneCountInString(value) < minLen {
		return msgTooShort
	}
	return ""
}

// TokenExpiry reads the exp claim of a session token.
// The signature is not checked; the client never holds the signing key.
func TokenExpiry(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrInvalidToken
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// NewRequestID returns a random identifier for correlating log lines
func NewRequestID() string {
	return uuid.NewString()
}
