package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed token lifetime. Expiry is the only invalidation
// mechanism; there is no revocation list.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers malformed tokens, expired tokens and signature
// mismatches alike.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity claims carried by a bearer token.
type Claims struct {
	AccountID int
	Role      string
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 bearer tokens bound to an account id and
// role.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
}

// WithClock replaces the issuer's clock. Used in tests to move tokens
// across their expiry window.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue signs a token for the given claims, expiring DefaultTTL from now.
func (i *Issuer) Issue(claims Claims) (string, error) {
	now := i.now()
	tc := tokenClaims{
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(claims.AccountID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token and returns its claims. Any failure
// mode maps to ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	tc := tokenClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		&tc,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	accountID, err := strconv.Atoi(strings.TrimSpace(tc.Subject))
	if err != nil || accountID < 1 {
		return Claims{}, ErrInvalidToken
	}
	return Claims{AccountID: accountID, Role: tc.Role}, nil
}
