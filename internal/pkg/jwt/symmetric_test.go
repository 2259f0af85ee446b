package jwt

import (
	"testing"
	"time"

	"github.com/smashstrix/smashstrix/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

type fixedTokenID struct{ value string }

func (f *fixedTokenID) Generate() string { return f.value }

func newSigner(t *testing.T, clk clocker) *Symmetric {
	t.Helper()

	signer, err := NewHS512(Config{
		Secret:    testSecret,
		Issuer:    "smashstrix-test",
		Audiences: []string{"smashstrix-web"},
		TTL:       time.Hour,
		Clock:     clk,
		TokenID:   &fixedTokenID{value: "token-id"},
	})
	require.NoError(t, err)

	return signer
}

func TestNewHS512(t *testing.T) {
	t.Run("RejectsShortSecret", func(t *testing.T) {
		_, err := NewHS512(Config{Secret: []byte("too-short")})
		assert.ErrorIs(t, err, ErrSigningKeyTooShort)
	})
}

func TestSymmetric(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		signer := newSigner(t, clock.New())

		token, err := signer.Generate(TokenUser{ID: 7, Email: "ana@example.com", Staff: true})
		require.NoError(t, err)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "ana@example.com", claims.UserEmail)
		assert.True(t, claims.IsStaff)
		assert.Equal(t, "token-id", claims.ID)
		assert.Equal(t, "7", claims.Subject)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		past := clock.NewFixed(time.Now().Add(-2 * time.Hour))
		signer := newSigner(t, past)

		token, err := signer.Generate(TokenUser{ID: 7})
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("TamperedToken", func(t *testing.T) {
		signer := newSigner(t, clock.New())

		token, err := signer.Generate(TokenUser{ID: 7})
		require.NoError(t, err)

		_, err = signer.Verify(token[:len(token)-2] + "xx")
		assert.Error(t, err)
	})

	t.Run("WrongIssuerRejected", func(t *testing.T) {
		signer := newSigner(t, clock.New())

		other, err := NewHS512(Config{
			Secret:    testSecret,
			Issuer:    "someone-else",
			Audiences: []string{"smashstrix-web"},
			TTL:       time.Hour,
			Clock:     clock.New(),
			TokenID:   &fixedTokenID{value: "token-id"},
		})
		require.NoError(t, err)

		token, err := other.Generate(TokenUser{ID: 7})
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.Error(t, err)
	})
}

func TestAuthContext(t *testing.T) {
	ctx := t.Context()

	assert.Nil(t, GetAuth(ctx))

	ctx = SetAuth(ctx, Claims{UserID: 7, IsStaff: true})
	clm := GetAuth(ctx)
	require.NotNil(t, clm)
	assert.Equal(t, int64(7), clm.UserID)
	assert.True(t, clm.IsStaff)
}
