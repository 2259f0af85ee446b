package db

import (
	"context"

	"github.com/smashstrix/smashstrix/internal/account/entity"
)

func (s *DB) GetTOTPFactor(ctx context.Context, userID int64) (_ *entity.TOTPFactor, err error) {
	ctx, span := s.startSpan(ctx, "GetTOTPFactor")
	defer func() { s.endSpan(span, err) }()

	var f entity.TOTPFactor
	err = s.conn.QueryRow(ctx, `
		SELECT id, user_id, secret, is_confirmed, created_at
		FROM account_totp_factors
		WHERE user_id = $1`, userID,
	).Scan(&f.ID, &f.UserID, &f.Secret, &f.Confirmed, &f.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &f, nil
}

// SaveTOTPFactor stores an unconfirmed enrollment, replacing any earlier
// unconfirmed secret for the user.
func (s *DB) SaveTOTPFactor(ctx context.Context, factor entity.TOTPFactor) (err error) {
	ctx, span := s.startSpan(ctx, "SaveTOTPFactor")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO account_totp_factors (id, user_id, secret, is_confirmed, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET id = EXCLUDED.id, secret = EXCLUDED.secret, created_at = EXCLUDED.created_at
		WHERE NOT account_totp_factors.is_confirmed`,
		factor.ID, factor.UserID, factor.Secret, factor.CreatedAt)
	return s.mapError(err)
}

func (s *DB) ConfirmTOTPFactor(ctx context.Context, id, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "ConfirmTOTPFactor")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE account_totp_factors SET is_confirmed = TRUE
		WHERE id = $1 AND user_id = $2`, id, userID)
	return s.mapError(err)
}
