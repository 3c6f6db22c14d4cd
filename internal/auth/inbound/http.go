package inbound

import (
	"context"
	"time"

	"github.com/rahmatfadli/goverify/internal/auth/usecase"
	"github.com/rahmatfadli/goverify/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)

	PhoneCodeSend(ctx context.Context, in usecase.PhoneCodeSendInput) error
	PhoneCodeVerify(ctx context.Context, in usecase.PhoneCodeVerifyInput) (*usecase.PhoneCodeVerifyOutput, error)
	EmailCodeSend(ctx context.Context, in usecase.EmailCodeSendInput) error
	EmailCodeVerify(ctx context.Context, in usecase.EmailCodeVerifyInput) error

	Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error)
	EmailAdd(ctx context.Context, in usecase.EmailAddInput) error
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, refreshTTL time.Duration) {
	end := &HTTPEndpoint{uc: uc, refreshTTL: refreshTTL}

	// Account & session
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/login", end.Login)
	r.GET("/api/v1/auth/refresh", end.RefreshToken)

	// Verification codes
	r.POST("/api/v1/auth/otp/phone/send", end.PhoneCodeSend)
	r.POST("/api/v1/auth/otp/phone/verify", end.PhoneCodeVerify)
	r.POST("/api/v1/auth/otp/email/send", end.EmailCodeSend)
	r.POST("/api/v1/auth/otp/email/verify", end.EmailCodeVerify)

	// Account management (need authenticated)
	r.GET("/api/v1/auth/profile", end.Profile)
	r.POST("/api/v1/auth/email", end.EmailAdd)
	r.POST("/api/v1/auth/password/change", end.PasswordChange)
}
