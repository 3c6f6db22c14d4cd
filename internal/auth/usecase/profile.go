package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
	"github.com/rahmatfadli/goverify/internal/pkg/jwt"
)

type ProfileInput struct{}

type ProfileOutput struct {
	ID            int64
	Phone         string
	Email         string
	PhoneVerified bool
	EmailVerified bool
}

func (s *Usecase) Profile(ctx context.Context, in ProfileInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	acc, err := s.repoDB.GetAccountByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "account_id", clm.UserID)
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		ID:            acc.ID,
		Phone:         acc.Phone,
		Email:         acc.Email,
		PhoneVerified: acc.PhoneVerified,
		EmailVerified: acc.EmailVerified,
	}, nil
}
