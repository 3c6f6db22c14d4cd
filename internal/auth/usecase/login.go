package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
)

type LoginInput struct {
	Phone    string `validate:"required,phone"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken  string
	RefreshToken string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByPhone(ctx, in.Phone)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "phone", in.Phone)
		return nil, goerror.NewBusiness("invalid phone or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by phone", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(acc.Password, in.Password) {
		slog.WarnContext(ctx, "account password not match", "account_id", acc.ID)
		return nil, goerror.NewBusiness("invalid phone or password", goerror.CodeUnauthorized)
	}

	if !acc.PhoneVerified {
		slog.WarnContext(ctx, "account phone is unverified", "account_id", acc.ID)
		return nil, goerror.NewBusiness("phone not verified", goerror.CodeForbidden)
	}

	return s.issueTokens(ctx, acc.ID, acc.Phone)
}

func (s *Usecase) issueTokens(ctx context.Context, accountID int64, phone string) (*LoginOutput, error) {
	acToken, err := s.jwtAccess.Generate(accountID, phone)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "account_id", accountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	refToken, err := s.jwtRefresh.Generate(accountID, phone)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate refresh jwt token", "account_id", accountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		AccessToken:  acToken,
		RefreshToken: refToken,
	}, nil
}
