package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt hashes with bcrypt. A configured pepper is appended to the
// plaintext before hashing and verifying; it lives in config, never in the
// database.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a bcrypt hasher. cost follows bcrypt.DefaultCost
// semantics; pepper may be empty.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	return &Bcrypt{cost: cost, pepper: pepper}
}

// Hash hashes plaintext.
func (b *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext+b.pepper), b.cost)
}

// Verify reports whether plaintext matches hashed.
func (b *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+b.pepper)) == nil
}
