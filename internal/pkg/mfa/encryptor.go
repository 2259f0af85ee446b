// Package mfa protects TOTP secrets at rest. Secrets are AES-256-GCM
// encrypted and bound to their owning user so a ciphertext copied between
// rows will not decrypt.
package mfa

import "errors"

// Scope binds a ciphertext to its owner and purpose.
type Scope struct {
	UserID  int64
	Purpose string
}

// Encryptor encrypts and decrypts secrets under a scope.
type Encryptor interface {
	Encrypt(plaintext []byte, scope Scope) ([]byte, error)
	Decrypt(ciphertext []byte, scope Scope) ([]byte, error)
}

// KeyProvider supplies raw 32-byte AES keys per scope.
type KeyProvider interface {
	Key(scope Scope) ([]byte, error)
}

// ErrMissingStaticKey indicates a StaticKeyProvider with no key material.
var ErrMissingStaticKey = errors.New("mfa: missing static key")

// StaticKeyProvider returns one key for every scope. Suited to single-tenant
// deployments; swap for a KMS-backed provider to rotate keys.
type StaticKeyProvider struct {
	KeyBytes []byte
}

// Key returns a copy of the static key.
func (p StaticKeyProvider) Key(_ Scope) ([]byte, error) {
	if len(p.KeyBytes) == 0 {
		return nil, ErrMissingStaticKey
	}

	k := make([]byte, len(p.KeyBytes))
	copy(k, p.KeyBytes)
	return k, nil
}
