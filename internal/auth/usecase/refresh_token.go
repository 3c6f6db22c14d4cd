package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
	"github.com/rahmatfadli/goverify/internal/pkg/jwt"
)

type RefreshTokenInput struct {
	RefreshToken string `validate:"required"`
}

type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

func (s *Usecase) RefreshToken(ctx context.Context, in RefreshTokenInput) (*RefreshTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "RefreshToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm, err := s.jwtRefresh.Verify(in.RefreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			slog.WarnContext(ctx, "refresh token is expired")
		} else {
			slog.WarnContext(ctx, "refresh token is invalid", "error", err)
		}

		return nil, goerror.NewBusiness("invalid or expired refresh token", goerror.CodeUnauthorized)
	}

	acc, err := s.repoDB.GetAccountByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account for refresh token not found", "account_id", clm.UserID)
		return nil, goerror.NewBusiness("invalid or expired refresh token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out, err := s.issueTokens(ctx, acc.ID, acc.Phone)
	if err != nil {
		return nil, err
	}

	return &RefreshTokenOutput{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}, nil
}
