// Package event holds the message contracts exchanged between modules over
// the broker. Producers and consumers both import these types so the wire
// format has a single owner.
package event

const (
	// TopicUserVerified announces a completed signup verification.
	TopicUserVerified = "account.user.verified"
	// TopicUserPasswordChanged announces a completed password reset.
	TopicUserPasswordChanged = "account.user.password-changed"
)

// AttrCorrelationID is the message attribute carrying the request
// correlation ID across the broker.
const AttrCorrelationID = "correlation_id"

// UserVerifiedMessage is the payload of TopicUserVerified.
type UserVerifiedMessage struct {
	UserID   int64  `json:"user_id,string"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// UserPasswordChangedMessage is the payload of TopicUserPasswordChanged.
type UserPasswordChangedMessage struct {
	UserID int64  `json:"user_id,string"`
	Email  string `json:"email"`
}
