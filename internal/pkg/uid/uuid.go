package uid

import "github.com/google/uuid"

// UUID generates RFC 4122 strings, preferring the time ordered v7 layout.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string. Falls back to v4 when v7 cannot read
// randomness.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
