package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
)

type RegisterInput struct {
	Phone    string `validate:"required,phone"`
	Password string `validate:"required,password"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetAccountByPhone(ctx, in.Phone)
	if err == nil {
		return goerror.NewBusiness("Phone already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by phone", "phone", in.Phone, "error", err)
		return goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	newAccount := entity.NewAccount{
		ID:    s.uid.Generate(),
		Phone: in.Phone,
	}
	if err := s.repoDB.CreateAccount(ctx, newAccount, string(hashedPassword)); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("Phone already registered", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create account", "phone", in.Phone, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
