package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokensDisabled is returned when no signing secret is configured.
var ErrTokensDisabled = errors.New("api tokens are not configured")

// TokenIssuer signs and verifies HS256 bearer tokens for the JSON API. The
// subject claim carries the cook id.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns nil when secret is empty.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if secret == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for cookID and its expiry.
func (i *TokenIssuer) Issue(cookID uint) (string, time.Time, error) {
	if i == nil {
		return "", time.Time{}, ErrTokensDisabled
	}
	issued := i.now()
	expires := issued.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(cookID), 10),
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Verify checks the signature and expiry and returns the cook id.
func (i *TokenIssuer) Verify(token string) (uint, error) {
	if i == nil {
		return 0, ErrTokensDisabled
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid {
		return 0, ErrUnauthenticated
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrUnauthenticated
	}
	return uint(id), nil
}
