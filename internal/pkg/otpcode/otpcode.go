// Package otpcode generates the short numeric codes delivered over email.
//
// These are single-use random codes tied to a database row, not TOTP. Each
// digit is drawn independently and uniformly from crypto/rand so every code
// in [000000, 999999] is equally likely, leading zeros included.
package otpcode

import (
	"crypto/rand"
	"math/big"
)

// Length is the number of digits in a generated code.
const Length = 6

var ten = big.NewInt(10)

// Generator produces verification codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric is the production Generator.
type Numeric struct{}

// NewNumeric returns a Numeric generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a fresh 6-digit code.
func (*Numeric) Generate() (string, error) {
	buf := make([]byte, Length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + n.Int64())
	}

	return string(buf), nil
}

// Static always returns the same code. Test helper.
type Static struct {
	Code string
}

// Generate returns the fixed code.
func (s *Static) Generate() (string, error) {
	return s.Code, nil
}
