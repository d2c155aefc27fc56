package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "clinical-program-tracker"

// ErrTokensDisabled is returned by Issuer methods when no secret is configured.
var ErrTokensDisabled = errors.New("actor tokens are disabled")

// ActorClaims identifies the user on whose behalf a request is made.
type ActorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 actor tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. An empty secret yields a disabled Issuer.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Enabled reports whether tokens can be issued and verified.
func (i *Issuer) Enabled() bool {
	return i != nil && len(i.secret) > 0
}

// Issue returns a signed token for the given user.
func (i *Issuer) Issue(userID uint, role string) (string, error) {
	if !i.Enabled() {
		return "", ErrTokensDisabled
	}
	now := i.now()
	claims := ActorClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies token and returns the user id in its subject.
func (i *Issuer) Parse(token string) (uint, error) {
	if !i.Enabled() {
		return 0, ErrTokensDisabled
	}
	claims := &ActorClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	return uint(id), nil
}
