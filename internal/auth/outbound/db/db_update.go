package db

import (
	"context"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
)

// SetAccountEmail replaces the account email and clears the email verified
// flag in the same statement.
func (s *DB) SetAccountEmail(ctx context.Context, id int64, email string) (err error) {
	ctx, span := s.startSpan(ctx, "SetAccountEmail")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE accounts
		SET email = $2, email_verified = FALSE, updated_at = NOW()
		WHERE id = $1`,
		id, email,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

// SetChannelVerified flips the verified flag for one channel. The update is
// idempotent, re-verifying an already verified channel is a no-op.
func (s *DB) SetChannelVerified(ctx context.Context, id int64, ch entity.Channel) (err error) {
	ctx, span := s.startSpan(ctx, "SetChannelVerified")
	defer func() { s.endSpan(span, err) }()

	column := "phone_verified"
	if ch == entity.ChannelEmail {
		column = "email_verified"
	}

	tag, err := s.conn.Exec(ctx, `
		UPDATE accounts SET `+column+` = TRUE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func (s *DB) UpdateAccountPassword(ctx context.Context, id int64, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountPassword")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE accounts SET password = $2, updated_at = NOW() WHERE id = $1`,
		id, hash,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
