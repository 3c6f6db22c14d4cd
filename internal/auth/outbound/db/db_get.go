package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rahmatfadli/goverify/internal/auth/entity"
)

const accountColumns = `id, phone, email, password, phone_verified, email_verified, created_at, updated_at`

func (s *DB) scanAccount(row interface{ Scan(dest ...any) error }) (*entity.Account, error) {
	var (
		acc   entity.Account
		email pgtype.Text
	)

	err := row.Scan(
		&acc.ID,
		&acc.Phone,
		&email,
		&acc.Password,
		&acc.PhoneVerified,
		&acc.EmailVerified,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	if email.Valid {
		acc.Email = email.String
	}

	return &acc, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return s.scanAccount(row)
}

func (s *DB) GetAccountByPhone(ctx context.Context, phone string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByPhone")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE phone = $1`, phone)
	return s.scanAccount(row)
}

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return s.scanAccount(row)
}
