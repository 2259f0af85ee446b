package db

import (
	"context"
	"time"

	"github.com/smashstrix/smashstrix/internal/account/entity"
)

func (s *DB) InsertOTP(ctx context.Context, row entity.OTP) (err error) {
	ctx, span := s.startSpan(ctx, "InsertOTP")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO account_otps (id, user_id, code, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		row.ID, row.UserID, row.Code, row.ExpiresAt, row.CreatedAt)
	return s.mapError(err)
}

// ClaimOTP consumes one matching unexpired code in a single statement, so
// two concurrent verifications can never both succeed on the same row.
func (s *DB) ClaimOTP(ctx context.Context, userID int64, code string, now time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "ClaimOTP")
	defer func() { s.endSpan(span, err) }()

	var id int64
	err = s.conn.QueryRow(ctx, `
		DELETE FROM account_otps
		WHERE id = (
			SELECT id FROM account_otps
			WHERE user_id = $1 AND code = $2 AND expires_at > $3
			ORDER BY created_at
			LIMIT 1
		)
		RETURNING id`,
		userID, code, now,
	).Scan(&id)
	if err != nil {
		return 0, s.mapError(err)
	}
	return id, nil
}
