// internal/auth/auth.go
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrWrongTable is returned when a valid token names another table.
	ErrWrongTable = errors.New("token issued for another table")
	// ErrNoSecret is returned by an Issuer built without a signing secret.
	ErrNoSecret = errors.New("no signing secret")
)

// SeatClaims binds a player name to a seat at one table.
type SeatClaims struct {
	Table uuid.UUID `json:"table"`
	Place int       `json:"place"`
	Name  string    `json:"name"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies seat tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. A zero ttl issues tokens without expiry.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue returns a signed token for name at place.
func (i *Issuer) Issue(table uuid.UUID, place int, name string) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrNoSecret
	}
	now := i.now()
	claims := SeatClaims{
		Table: table,
		Place: place,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  strconv.Itoa(place),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing seat token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and checks its signature, expiry and table.
func (i *Issuer) Verify(table uuid.UUID, tokenString string) (*SeatClaims, error) {
	if len(i.secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := &SeatClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("verifying seat token: %w", err)
	}
	if claims.Table != table {
		return nil, ErrWrongTable
	}
	return claims, nil
}
