package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
)

type PhoneCodeSendInput struct {
	Phone string `validate:"required,phone"`
}

type EmailCodeSendInput struct {
	Email string `validate:"required,email"`
}

func (s *Usecase) PhoneCodeSend(ctx context.Context, in PhoneCodeSendInput) error {
	ctx, span := s.startSpan(ctx, "PhoneCodeSend")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByPhone(ctx, in.Phone)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "phone", in.Phone)
		return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by phone", "phone", in.Phone, "error", err)
		return goerror.NewServer(err)
	}

	return s.sendCode(ctx, entity.ChannelPhone, acc.Phone)
}

func (s *Usecase) EmailCodeSend(ctx context.Context, in EmailCodeSendInput) error {
	ctx, span := s.startSpan(ctx, "EmailCodeSend")
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

	return s.sendCode(ctx, entity.ChannelEmail, acc.Email)
}

// sendCode delivers a verification code to address. A still-live challenge
// keeps its original code on resend. Challenge state is only touched after
// the gateway confirms delivery, so a failed send leaves nothing behind.
func (s *Usecase) sendCode(ctx context.Context, ch entity.Channel, address string) error {
	chal, err := s.store.GetChallenge(ctx, ch, address)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to store get challenge", "channel", ch.String(), "error", err)
		return goerror.NewServer(err)
	}

	var code string
	if chal != nil {
		if chal.Attempts >= codeSendLimit {
			slog.WarnContext(ctx, "code send limit reached", "channel", ch.String())
			return goerror.NewBusiness("Too many code requests, try again later", goerror.CodeTooManyRequest)
		}

		code = chal.Code
	} else {
		code = s.newCode()
	}

	if err := s.gateway.SendCode(ctx, ch, address, code); err != nil {
		slog.ErrorContext(ctx, "failed to deliver verification code", "channel", ch.String(), "error", err)
		return goerror.NewBusiness("Failed to deliver verification code, please retry", goerror.CodeInternal)
	}

	if chal == nil {
		return s.createChallenge(ctx, ch, address, code)
	}

	if _, err := s.store.IncrementAttempts(ctx, ch, address); err != nil {
		// The challenge expired while the gateway was delivering. The code
		// just sent starts a fresh challenge so it stays verifiable.
		if errors.Is(err, goerror.ErrNotFound) {
			return s.createChallenge(ctx, ch, address, code)
		}

		slog.ErrorContext(ctx, "failed to store increment challenge attempts", "channel", ch.String(), "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) createChallenge(ctx context.Context, ch entity.Channel, address, code string) error {
	chal := entity.Challenge{
		Channel:   ch,
		Address:   address,
		Code:      code,
		Attempts:  1,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.CreateChallenge(ctx, chal, challengeTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store create challenge", "channel", ch.String(), "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
