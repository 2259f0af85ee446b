package clock

import "time"

// Clocker is the time source used by business logic.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock.
type TimeClocker struct{}

// New returns the production clock.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// FixedClocker always returns the same instant. Tests use it to pin expiry
// arithmetic.
type FixedClocker struct {
	At time.Time
}

// NewFixed returns a clock frozen at the given instant.
func NewFixed(at time.Time) *FixedClocker {
	return &FixedClocker{At: at}
}

// Now returns the frozen instant.
func (f *FixedClocker) Now() time.Time {
	return f.At
}
