package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
	"github.com/rahmatfadli/goverify/internal/pkg/jwt"
)

type EmailAddInput struct {
	Email string `validate:"required,email"`
}

func (s *Usecase) EmailAdd(ctx context.Context, in EmailAddInput) error {
	ctx, span := s.startSpan(ctx, "EmailAdd")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	owner, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err == nil {
		if owner.ID == clm.UserID {
			return nil
		}

		return goerror.NewBusiness("Email already in use", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "error", err)
		return goerror.NewServer(err)
	}

	// Replacing the address drops the verified flag so it only ever
	// reflects the current email.
	if err := s.repoDB.SetAccountEmail(ctx, clm.UserID, in.Email); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("Email already in use", goerror.CodeConflict)
		}
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to repo set account email", "account_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
