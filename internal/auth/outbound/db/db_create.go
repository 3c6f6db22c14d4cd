package db

import (
	"context"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
)

func (s *DB) CreateAccount(ctx context.Context, acc entity.NewAccount, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO accounts (id, phone, password, phone_verified, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, FALSE, NOW(), NOW())`,
		acc.ID, acc.Phone, hash,
	)
	err = s.mapError(err)
	return err
}
