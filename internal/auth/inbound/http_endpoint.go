package inbound

import (
	"time"

	"github.com/rahmatfadli/goverify/internal/auth/usecase"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
	"github.com/rahmatfadli/goverify/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for registration, verification codes,
// sessions, and account management.
type HTTPEndpoint struct {
	uc         uc
	refreshTTL time.Duration
}

// Register creates a new account keyed by phone number.
// @Summary Register account
// @Description Creates an account with a phone number and password. The phone must be verified before login.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} router.successResponse "Registration result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Phone already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Phone:    req.Phone,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return &RegisterResponse{}, nil
}

// Login authenticates a verified account and issues tokens.
// @Summary Authenticate account
// @Description Validates phone and password, returns an access token and sets the refresh-token cookie. The phone must be verified.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 403 {object} router.errorResponse "Phone not verified"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken:   resp.AccessToken,
		refreshCookie: newRefreshCookie(resp.RefreshToken, h.refreshTTL),
	}, nil
}

// RefreshToken rotates the session using the refresh-token cookie.
// @Summary Refresh access token
// @Description Exchanges the refresh-token cookie for a new access token and a fresh cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=RefreshTokenResponse} "Token refresh result"
// @Failure 401 {object} router.errorResponse "Invalid or expired refresh token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/refresh [get]
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return nil, goerror.NewBusiness("invalid or expired refresh token", goerror.CodeUnauthorized)
	}

	resp, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{RefreshToken: cookie.Value})
	if err != nil {
		return nil, err
	}

	return RefreshTokenResponse{
		AccessToken:   resp.AccessToken,
		refreshCookie: newRefreshCookie(resp.RefreshToken, h.refreshTTL),
	}, nil
}

// PhoneCodeSend delivers a verification code to an account's phone.
// @Summary Send phone verification code
// @Description Sends a one-time code by SMS. Resending within the code lifetime delivers the same code.
// @Tags Auth, Verification
// @Accept json
// @Produce json
// @Param request body PhoneCodeSendRequest true "Send code payload"
// @Success 200 {object} router.successResponse "Delivery result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many code requests"
// @Failure 500 {object} router.errorResponse "Delivery failed"
// @Router /api/v1/auth/otp/phone/send [post]
func (h *HTTPEndpoint) PhoneCodeSend(r *router.Request) (any, error) {
	var req PhoneCodeSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PhoneCodeSend(r.Context(), usecase.PhoneCodeSendInput{Phone: req.Phone}); err != nil {
		return nil, err
	}

	return &PhoneCodeSendResponse{}, nil
}

// PhoneCodeVerify checks a phone code, marks the phone verified, and starts a session.
// @Summary Verify phone code
// @Description Verifies the one-time code for a phone number. On success the phone is marked verified and tokens are issued.
// @Tags Auth, Verification
// @Accept json
// @Produce json
// @Param request body PhoneCodeVerifyRequest true "Verify code payload"
// @Success 200 {object} router.successResponse{data=PhoneCodeVerifyResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Incorrect verification code"
// @Failure 404 {object} router.errorResponse "Code expired or account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many verification attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/otp/phone/verify [post]
func (h *HTTPEndpoint) PhoneCodeVerify(r *router.Request) (any, error) {
	var req PhoneCodeVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PhoneCodeVerify(r.Context(), usecase.PhoneCodeVerifyInput{
		Phone: req.Phone,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return PhoneCodeVerifyResponse{
		AccessToken:   resp.AccessToken,
		refreshCookie: newRefreshCookie(resp.RefreshToken, h.refreshTTL),
	}, nil
}

// EmailCodeSend delivers a verification code to an account's email address.
// @Summary Send email verification code
// @Description Sends a one-time code by email. Resending within the code lifetime delivers the same code.
// @Tags Auth, Verification
// @Accept json
// @Produce json
// @Param request body EmailCodeSendRequest true "Send code payload"
// @Success 200 {object} router.successResponse "Delivery result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many code requests"
// @Failure 500 {object} router.errorResponse "Delivery failed"
// @Router /api/v1/auth/otp/email/send [post]
func (h *HTTPEndpoint) EmailCodeSend(r *router.Request) (any, error) {
	var req EmailCodeSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.EmailCodeSend(r.Context(), usecase.EmailCodeSendInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return &EmailCodeSendResponse{}, nil
}

// EmailCodeVerify checks an email code and marks the email verified.
// @Summary Verify email code
// @Description Verifies the one-time code for an email address and marks it verified.
// @Tags Auth, Verification
// @Accept json
// @Produce json
// @Param request body EmailCodeVerifyRequest true "Verify code payload"
// @Success 200 {object} router.successResponse "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Incorrect verification code"
// @Failure 404 {object} router.errorResponse "Code expired or account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many verification attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/otp/email/verify [post]
func (h *HTTPEndpoint) EmailCodeVerify(r *router.Request) (any, error) {
	var req EmailCodeVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.EmailCodeVerify(r.Context(), usecase.EmailCodeVerifyInput{
		Email: req.Email,
		Code:  req.Code,
	}); err != nil {
		return nil, err
	}

	return &EmailCodeVerifyResponse{}, nil
}

// Profile retrieves the current account's details.
// @Summary Get profile
// @Description Returns account information for the authenticated user.
// @Tags Auth, Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile result"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context(), usecase.ProfileInput{})
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:            resp.ID,
		Phone:         resp.Phone,
		Email:         resp.Email,
		PhoneVerified: resp.PhoneVerified,
		EmailVerified: resp.EmailVerified,
	}, nil
}

// EmailAdd attaches or replaces the email address on the current account.
// @Summary Add email address
// @Description Attaches an email address to the authenticated account. The address starts unverified.
// @Tags Auth, Profile
// @Security BearerAuth
// @Accept json
// @Param request body EmailAddRequest true "Email payload"
// @Param email query string false "Email address (fallback when no body is sent)"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 409 {object} router.errorResponse "Email already in use"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/email [post]
func (h *HTTPEndpoint) EmailAdd(r *router.Request) (any, error) {
	var req EmailAddRequest
	if r.ContentLength > 0 {
		if err := r.DecodeBody(&req); err != nil {
			return nil, err
		}
	}

	return nil, h.uc.EmailAdd(r.Context(), usecase.EmailAddInput{
		Email: lo.CoalesceOrEmpty(req.Email, r.GetQuery("email")),
	})
}

// PasswordChange updates the current account's password.
// @Summary Change password
// @Description Updates the password after validating the current password.
// @Tags Auth, Profile
// @Security BearerAuth
// @Accept json
// @Param request body PasswordChangeRequest true "Change password payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid password"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/password/change [post]
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
}
