package hash

// Hash is implemented by every hashing strategy in this package.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
