package inbound

import (
	"net/http"
	"time"
)

const refreshCookieName = "refresh"

// newRefreshCookie builds the refresh-token cookie. SameSite=None lets a
// browser frontend on another origin send it; that mode requires Secure.
func newRefreshCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

type RegisterRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RegisterResponse struct{}

func (RegisterResponse) Message() string {
	return "Registration successful. Please verify your phone number."
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`

	refreshCookie *http.Cookie
}

func (r LoginResponse) Cookies() []*http.Cookie {
	if r.refreshCookie == nil {
		return nil
	}
	return []*http.Cookie{r.refreshCookie}
}

type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`

	refreshCookie *http.Cookie
}

func (r RefreshTokenResponse) Cookies() []*http.Cookie {
	if r.refreshCookie == nil {
		return nil
	}
	return []*http.Cookie{r.refreshCookie}
}

type PhoneCodeSendRequest struct {
	Phone string `json:"phone"`
}

type PhoneCodeSendResponse struct{}

func (PhoneCodeSendResponse) Message() string {
	return "Verification code sent to your phone."
}

type PhoneCodeVerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type PhoneCodeVerifyResponse struct {
	AccessToken string `json:"access_token"`

	refreshCookie *http.Cookie
}

func (r PhoneCodeVerifyResponse) Cookies() []*http.Cookie {
	if r.refreshCookie == nil {
		return nil
	}
	return []*http.Cookie{r.refreshCookie}
}

func (PhoneCodeVerifyResponse) Message() string {
	return "Phone number verified."
}

type EmailCodeSendRequest struct {
	Email string `json:"email"`
}

type EmailCodeSendResponse struct{}

func (EmailCodeSendResponse) Message() string {
	return "Verification code sent to your email."
}

type EmailCodeVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type EmailCodeVerifyResponse struct{}

func (EmailCodeVerifyResponse) Message() string {
	return "Email address verified."
}

type EmailAddRequest struct {
	Email string `json:"email"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ProfileResponse struct {
	ID            int64  `json:"id,string"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	PhoneVerified bool   `json:"phone_verified"`
	EmailVerified bool   `json:"email_verified"`
}
