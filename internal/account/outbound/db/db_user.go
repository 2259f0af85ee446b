package db

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/smashstrix/smashstrix/internal/account/entity"
)

const selectUserColumns = `id, full_name, email, COALESCE(mobile_number, ''), COALESCE(referral_code, ''),
	is_active, is_blocked, is_staff, is_superuser, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.MobileNumber, &u.ReferralCode,
		&u.IsActive, &u.IsBlocked, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	user, err := scanUser(s.conn.QueryRow(ctx,
		`SELECT `+selectUserColumns+` FROM account_users WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	user, err := scanUser(s.conn.QueryRow(ctx,
		`SELECT `+selectUserColumns+` FROM account_users WHERE email = $1`, email))
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *DB) GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmailOrMobile")
	defer func() { s.endSpan(span, err) }()

	user, err := scanUser(s.conn.QueryRow(ctx,
		`SELECT `+selectUserColumns+` FROM account_users WHERE email = $1 OR mobile_number = $2 LIMIT 1`,
		email, mobile))
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *DB) GetUserLoginInfo(ctx context.Context, email string) (_ *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginInfo")
	defer func() { s.endSpan(span, err) }()

	var info entity.UserLoginInfo
	err = s.conn.QueryRow(ctx, `
		SELECT u.id, u.full_name, u.email, c.password,
		       u.is_active, u.is_blocked, u.is_staff, u.is_superuser,
		       EXISTS (
		           SELECT 1 FROM account_totp_factors f
		           WHERE f.user_id = u.id AND f.is_confirmed
		       ) AS has_totp
		FROM account_users u
		JOIN account_credentials c ON c.user_id = u.id
		WHERE u.email = $1`, email,
	).Scan(&info.ID, &info.FullName, &info.Email, &info.Password,
		&info.IsActive, &info.IsBlocked, &info.IsStaff, &info.IsSuperuser, &info.HasTOTP)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &info, nil
}

func (s *DB) GetUserList(ctx context.Context, filter entity.UserListFilter) (_ []entity.User, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	where := `WHERE NOT is_superuser`
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += ` AND (full_name ILIKE $1 OR email ILIKE $1 OR mobile_number ILIKE $1)`
	}
	if filter.Blocked != nil {
		args = append(args, *filter.Blocked)
		where += ` AND is_blocked = $` + strconv.Itoa(len(args))
	}

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM account_users `+where, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	args = append(args, filter.Size, (filter.Page-1)*filter.Size)

	rows, err := s.conn.Query(ctx, `
		SELECT `+selectUserColumns+`
		FROM account_users `+where+`
		ORDER BY created_at DESC
		LIMIT $`+strconv.Itoa(limitPos)+` OFFSET $`+strconv.Itoa(offsetPos), args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0, filter.Size)
	for rows.Next() {
		user, sErr := scanUser(rows)
		if sErr != nil {
			return nil, 0, s.mapError(sErr)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, total, nil
}

// CreateUser inserts the account row and its credential in one transaction.
func (s *DB) CreateUser(ctx context.Context, user entity.NewUser, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to roll back", "error", rErr)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO account_users (id, full_name, email, mobile_number, referral_code, is_active)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)`,
		user.ID, user.FullName, user.Email, user.MobileNumber, user.ReferralCode, user.IsActive)
	if err != nil {
		return s.mapError(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO account_credentials (user_id, password) VALUES ($1, $2)`,
		user.ID, passwordHash)
	if err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

// DeleteUser removes the account and everything hanging off it. Used to roll
// back a signup whose verification email never left.
func (s *DB) DeleteUser(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM account_users WHERE id = $1`, id)
	return s.mapError(err)
}

func (s *DB) SetUserActive(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "SetUserActive")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE account_users SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return s.mapError(err)
}

func (s *DB) SetUserBlocked(ctx context.Context, id int64, blocked bool) (err error) {
	ctx, span := s.startSpan(ctx, "SetUserBlocked")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE account_users SET is_blocked = $2, updated_at = NOW() WHERE id = $1`, id, blocked)
	return s.mapError(err)
}

func (s *DB) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserPassword")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE account_credentials SET password = $2, updated_at = NOW() WHERE user_id = $1`,
		id, passwordHash)
	return s.mapError(err)
}

