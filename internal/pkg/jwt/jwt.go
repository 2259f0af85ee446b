package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned for tokens signed with anything
	// other than HS512.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort is returned when the HS512 key is under 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes")

	// ErrTokenExpired is returned for expired tokens.
	ErrTokenExpired = errors.New("token has expired")

	// ErrInvalidToken is returned for malformed or failing tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT generates and verifies access tokens.
type JWT interface {
	Generate(user TokenUser) (string, error)
	Verify(tokenStr string) (Claims, error)
}

// TokenUser is the identity baked into a token.
type TokenUser struct {
	ID    int64
	Email string
	Staff bool
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config holds the inputs for building a token signer.
type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clocker
	TokenID   generator
}

// Claims wraps the registered claims with the account payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id,string"`
	UserEmail string `json:"user_email"`
	IsStaff   bool   `json:"is_staff"`
}

type authContextKey struct{}

// GetAuth returns the claims stored in ctx, nil when unauthenticated.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(authContextKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

// SetAuth stores verified claims in ctx.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, authContextKey{}, clm)
}
