package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
)

type PhoneCodeVerifyInput struct {
	Phone string `validate:"required,phone"`
	Code  string `validate:"required,len=4,numeric"`
}

type PhoneCodeVerifyOutput struct {
	AccessToken  string
	RefreshToken string
}

type EmailCodeVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=4,numeric"`
}

// PhoneCodeVerify checks the submitted code against the live phone challenge.
// A successful verification also logs the account in.
func (s *Usecase) PhoneCodeVerify(ctx context.Context, in PhoneCodeVerifyInput) (*PhoneCodeVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "PhoneCodeVerify")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByPhone(ctx, in.Phone)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "phone", in.Phone)
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by phone", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.verifyCode(ctx, entity.ChannelPhone, acc.Phone, in.Code, acc.ID); err != nil {
		return nil, err
	}

	out, err := s.issueTokens(ctx, acc.ID, acc.Phone)
	if err != nil {
		return nil, err
	}

	return &PhoneCodeVerifyOutput{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}, nil
}

func (s *Usecase) EmailCodeVerify(ctx context.Context, in EmailCodeVerifyInput) error {
	ctx, span := s.startSpan(ctx, "EmailCodeVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found for email")
		return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "error", err)
		return goerror.NewServer(err)
	}

	return s.verifyCode(ctx, entity.ChannelEmail, acc.Email, in.Code, acc.ID)
}

func (s *Usecase) verifyCode(ctx context.Context, ch entity.Channel, address, code string, accountID int64) error {
	chal, err := s.store.GetChallenge(ctx, ch, address)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no live challenge", "channel", ch.String(), "account_id", accountID)
		return goerror.NewBusiness("Verification code expired, request a new one", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to store get challenge", "channel", ch.String(), "error", err)
		return goerror.NewServer(err)
	}

	if chal.Attempts >= codeVerifyLimit {
		slog.WarnContext(ctx, "code verify limit reached", "channel", ch.String(), "account_id", accountID)
		return goerror.NewBusiness("Too many verification attempts, try again later", goerror.CodeTooManyRequest)
	}

	if chal.Code != code {
		if _, err := s.store.IncrementAttempts(ctx, ch, address); err != nil {
			// The challenge expired after the lookup, same outcome as no
			// live challenge at all.
			if errors.Is(err, goerror.ErrNotFound) {
				slog.WarnContext(ctx, "challenge expired during verify", "channel", ch.String(), "account_id", accountID)
				return goerror.NewBusiness("Verification code expired, request a new one", goerror.CodeNotFound)
			}

			slog.ErrorContext(ctx, "failed to store increment challenge attempts", "channel", ch.String(), "error", err)
			return goerror.NewServer(err)
		}

		slog.WarnContext(ctx, "incorrect verification code", "channel", ch.String(), "account_id", accountID)
		return goerror.NewBusiness("Incorrect verification code", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.SetChannelVerified(ctx, accountID, ch); err != nil {
		slog.ErrorContext(ctx, "failed to repo set channel verified", "channel", ch.String(), "account_id", accountID, "error", err)
		return goerror.NewServer(err)
	}

	// The verified flag is already set and a leftover challenge expires on
	// its own, so cleanup runs in the background and a failure only logs.
	s.gr.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.store.DeleteChallenge(ctx, ch, address); err != nil {
			slog.WarnContext(ctx, "failed to store delete verified challenge", "channel", ch.String(), "error", err)
		}

		return nil
	})

	return nil
}
