// Package state carries serialized quiz state across the stateless
// request boundary. The wire record travels inside an HMAC-signed token,
// so the client stores its own quiz between requests but cannot alter
// answers or scores without the signature failing.
package state

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL bounds how long an issued quiz state stays submittable.
const DefaultTTL = 2 * time.Hour

var ErrNoRecord = errors.New("state: token carries no quiz record")

type Signer struct {
	hmac []byte
	ttl  time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{hmac: []byte(secret), ttl: ttl}
}

type Claims struct {
	Record json.RawMessage `json:"record"`
	jwt.RegisteredClaims
}

// Issue wraps an encoded quiz record in a signed token.
func (s *Signer) Issue(record []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		Record: json.RawMessage(record),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "quizd",
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.hmac)
}

// Open verifies a token and returns the quiz record it carries,
// byte-for-byte as issued.
func (s *Signer) Open(tokenStr string) ([]byte, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || len(c.Record) == 0 {
		return nil, ErrNoRecord
	}
	return c.Record, nil
}
