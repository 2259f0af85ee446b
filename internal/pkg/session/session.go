// Package session stores pending verification flows server side.
//
// A flow is created when an OTP is issued and carries the purpose plus the
// user it belongs to. Clients hold only an opaque token; everything the
// verification endpoints need is resolved from Redis, so the client can
// never steer a code at a different account or purpose.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smashstrix/smashstrix/internal/pkg/hash"
)

// ErrNoFlow indicates there is no pending flow for the token.
var ErrNoFlow = errors.New("no pending verification flow")

// Purpose says why an OTP was issued. Always checked explicitly, never
// inferred from surrounding state.
type Purpose string

const (
	// PurposeSignupVerification activates a fresh account.
	PurposeSignupVerification Purpose = "signup_verification"
	// PurposePasswordReset authorizes choosing a new password.
	PurposePasswordReset Purpose = "password_reset"
	// PurposeStaffLogin gates the TOTP step of a staff login.
	PurposeStaffLogin Purpose = "staff_login"
)

// Valid reports whether p is a known purpose.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeSignupVerification, PurposePasswordReset, PurposeStaffLogin:
		return true
	default:
		return false
	}
}

// Flow is the server-side state of one verification flow.
type Flow struct {
	Purpose Purpose `json:"purpose"`
	UserID  int64   `json:"user_id,string"`
	// ResetAuthorized flips to true after a successful password-reset
	// verification; set_new_password requires it.
	ResetAuthorized bool `json:"reset_authorized"`
}

// Store persists pending flows keyed by opaque token.
type Store interface {
	// Start creates the flow with the given lifetime, replacing any flow
	// already stored under the token and resetting its attempt counter.
	Start(ctx context.Context, token string, flow Flow, ttl time.Duration) error
	// Get returns the flow, or ErrNoFlow when absent or expired.
	Get(ctx context.Context, token string) (Flow, error)
	// Save rewrites the flow, keeping the remaining lifetime.
	Save(ctx context.Context, token string, flow Flow) error
	// End removes the flow. Missing flows are not an error.
	End(ctx context.Context, token string) error
	// IncrAttempts bumps the verification attempt counter for the flow and
	// returns the new total. The counter shares the flow lifetime.
	IncrAttempts(ctx context.Context, token string, ttl time.Duration) (int64, error)
	// AllowResend reports whether a resend is permitted now, and if so
	// starts the cool-down window.
	AllowResend(ctx context.Context, token string, window time.Duration) (bool, error)
}

// RedisStore implements Store. Tokens are digested before being used as
// keys so the raw token never appears in Redis.
type RedisStore struct {
	client *redis.Client
	digest hash.Hash
}

// NewRedisStore builds a RedisStore over the given client and token digest.
func NewRedisStore(client *redis.Client, digest hash.Hash) *RedisStore {
	return &RedisStore{client: client, digest: digest}
}

func (s *RedisStore) key(kind, token string) string {
	d, err := s.digest.Hash(token)
	if err != nil {
		// HMAC hashing cannot fail; fall back to the raw token anyway.
		return "flow:" + kind + ":" + token
	}
	return "flow:" + kind + ":" + string(d)
}

// Start creates the flow under its token.
func (s *RedisStore) Start(ctx context.Context, token string, flow Flow, ttl time.Duration) error {
	payload, err := json.Marshal(flow)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key("state", token), payload, ttl).Err(); err != nil {
		return err
	}

	// A restarted flow gets a fresh attempt budget.
	return s.client.Del(ctx, s.key("attempts", token)).Err()
}

// Get returns the flow for the token.
func (s *RedisStore) Get(ctx context.Context, token string) (Flow, error) {
	raw, err := s.client.Get(ctx, s.key("state", token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Flow{}, ErrNoFlow
	}
	if err != nil {
		return Flow{}, err
	}

	var flow Flow
	if err := json.Unmarshal(raw, &flow); err != nil {
		return Flow{}, err
	}

	return flow, nil
}

// Save rewrites the flow without touching its remaining lifetime.
func (s *RedisStore) Save(ctx context.Context, token string, flow Flow) error {
	payload, err := json.Marshal(flow)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key("state", token), payload, redis.KeepTTL).Err()
}

// End removes the flow and its attempt counter.
func (s *RedisStore) End(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key("state", token), s.key("attempts", token)).Err()
}

// IncrAttempts bumps and returns the attempt counter.
func (s *RedisStore) IncrAttempts(ctx context.Context, token string, ttl time.Duration) (int64, error) {
	key := s.key("attempts", token)

	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return n, err
		}
	}

	return n, nil
}

// AllowResend acquires the per-flow resend cool-down slot.
func (s *RedisStore) AllowResend(ctx context.Context, token string, window time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.key("resend", token), "1", window).Result()
}
