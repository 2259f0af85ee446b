package mfa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0xA5}, 32)
}

func TestAESGCMEncryptor(t *testing.T) {
	enc := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: testKey()})
	scope := Scope{UserID: 7, Purpose: "totp"}

	t.Run("RoundTrip", func(t *testing.T) {
		sealed, err := enc.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		require.NoError(t, err)
		require.NotEqual(t, []byte("JBSWY3DPEHPK3PXP"), sealed)

		opened, err := enc.Decrypt(sealed, scope)
		require.NoError(t, err)
		assert.Equal(t, []byte("JBSWY3DPEHPK3PXP"), opened)
	})

	t.Run("EmptyPlaintext", func(t *testing.T) {
		_, err := enc.Encrypt(nil, scope)
		assert.ErrorIs(t, err, ErrPlaintextEmpty)
	})

	t.Run("WrongScopeFails", func(t *testing.T) {
		sealed, err := enc.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		require.NoError(t, err)

		_, err = enc.Decrypt(sealed, Scope{UserID: 8, Purpose: "totp"})
		assert.ErrorIs(t, err, ErrDecryptFailed)

		_, err = enc.Decrypt(sealed, Scope{UserID: 7, Purpose: "backup"})
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("TamperedCiphertextFails", func(t *testing.T) {
		sealed, err := enc.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
		require.NoError(t, err)

		sealed[len(sealed)-1] ^= 0x01
		_, err = enc.Decrypt(sealed, scope)
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("TruncatedCiphertext", func(t *testing.T) {
		_, err := enc.Decrypt([]byte{0, 1, 2}, scope)
		assert.ErrorIs(t, err, ErrCiphertextTooShort)
	})

	t.Run("WrongKeyLength", func(t *testing.T) {
		bad := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: []byte("short")})
		_, err := bad.Encrypt([]byte("secret"), scope)
		assert.ErrorIs(t, err, ErrInvalidKeyLength)
	})

	t.Run("NoKeyProvider", func(t *testing.T) {
		var unset *AESGCMEncryptor
		_, err := unset.Encrypt([]byte("secret"), scope)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}
