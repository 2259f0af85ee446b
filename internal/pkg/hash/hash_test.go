package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	t.Run("RoundTrip", func(t *testing.T) {
		hashed, err := h.Hash("Sup3r@Secret")
		require.NoError(t, err)

		assert.True(t, h.Verify(string(hashed), "Sup3r@Secret"))
		assert.False(t, h.Verify(string(hashed), "not-it"))
	})

	t.Run("PepperBindsHash", func(t *testing.T) {
		hashed, err := h.Hash("Sup3r@Secret")
		require.NoError(t, err)

		other := NewBcrypt(bcrypt.MinCost, "different-pepper")
		assert.False(t, other.Verify(string(hashed), "Sup3r@Secret"))
	})
}

func TestArgon2id(t *testing.T) {
	h := NewArgon2id("pepper")

	t.Run("RoundTrip", func(t *testing.T) {
		hashed, err := h.Hash("Sup3r@Secret")
		require.NoError(t, err)
		assert.Contains(t, string(hashed), "$argon2id$")

		assert.True(t, h.Verify(string(hashed), "Sup3r@Secret"))
		assert.False(t, h.Verify(string(hashed), "not-it"))
	})

	t.Run("SaltedHashesDiffer", func(t *testing.T) {
		a, err := h.Hash("Sup3r@Secret")
		require.NoError(t, err)
		b, err := h.Hash("Sup3r@Secret")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("MalformedEncoding", func(t *testing.T) {
		assert.False(t, h.Verify("", "x"))
		assert.False(t, h.Verify("$bcrypt$nope", "x"))
		assert.False(t, h.Verify("$argon2id$v=19$m=65536,t=2,p=2$!!!$!!!", "x"))
	})
}

func TestHMACSHA256(t *testing.T) {
	h := NewHMACSHA256("secret")

	t.Run("Deterministic", func(t *testing.T) {
		a, err := h.Hash("flow-token")
		require.NoError(t, err)
		b, err := h.Hash("flow-token")
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.True(t, h.Verify(string(a), "flow-token"))
		assert.False(t, h.Verify(string(a), "other-token"))
	})

	t.Run("KeyedDigestsDiffer", func(t *testing.T) {
		a, err := h.Hash("flow-token")
		require.NoError(t, err)

		other := NewHMACSHA256("another-secret")
		b, err := other.Hash("flow-token")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})
}
