package entity

import "time"

// OTP is one issued verification code. A user may hold several live rows at
// once; claiming any one of them consumes only that row.
type OTP struct {
	ID        int64
	UserID    int64
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TOTPFactor is a staff authenticator enrollment. Secret is stored AES-GCM
// encrypted and only usable after confirmation.
type TOTPFactor struct {
	ID        int64
	UserID    int64
	Secret    []byte
	Confirmed bool
	CreatedAt time.Time
}
