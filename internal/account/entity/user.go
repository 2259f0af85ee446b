package entity

import "time"

// User is a storefront account. Password material lives in a separate
// credential row and never travels on this struct.
type User struct {
	ID           int64
	FullName     string
	Email        string
	MobileNumber string
	ReferralCode string
	IsActive     bool
	IsBlocked    bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser carries the fields needed to create an account. Accounts start
// inactive until the signup verification completes.
type NewUser struct {
	ID           int64
	FullName     string
	Email        string
	MobileNumber string
	ReferralCode string
	// IsActive is true only for identity-provider signups, where the email
	// is already verified.
	IsActive bool
}

// UserLoginInfo joins the account row with its credential and TOTP
// enrollment, shaped for the login path.
type UserLoginInfo struct {
	ID          int64
	FullName    string
	Email       string
	Password    string
	IsActive    bool
	IsBlocked   bool
	IsStaff     bool
	IsSuperuser bool
	HasTOTP     bool
}

// UserListFilter selects a page of the admin user directory.
type UserListFilter struct {
	// Search matches against fullname, email, and mobile number.
	Search  string
	Blocked *bool
	Page    int64
	Size    int64
}
