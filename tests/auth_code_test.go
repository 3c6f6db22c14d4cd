package tests

import (
	"net/http"
	"testing"
)

func TestPhoneCode(t *testing.T) {

	t.Run("SendUnknownAccount", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/otp/phone/send", map[string]string{
			"phone": uniquePhone(),
		}, "")

		// Assert
		if status != http.StatusNotFound {
			t.Fatalf("expected not found, got status=%d", status)
		}
	})

	t.Run("VerifyWithoutChallenge", func(t *testing.T) {

		// Arrange
		phone := uniquePhone()
		registerAccount(t, phone, "Secret123!")

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/otp/phone/verify", map[string]string{
			"phone": phone,
			"code":  "1234",
		}, "")

		// Assert
		if status != http.StatusNotFound {
			t.Fatalf("expected not found, got status=%d", status)
		}
	})

	t.Run("VerifyMalformedCode", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/otp/phone/verify", map[string]string{
			"phone": verifiedPhone,
			"code":  "12ab",
		}, "")

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected validation error, got status=%d", status)
		}
	})
}

func TestEmailCode(t *testing.T) {

	t.Run("SendUnknownAccount", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/otp/email/send", map[string]string{
			"email": uniqueEmail("real-code"),
		}, "")

		// Assert
		if status != http.StatusNotFound {
			t.Fatalf("expected not found, got status=%d", status)
		}
	})

	t.Run("VerifyWithoutChallenge", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/otp/email/verify", map[string]string{
			"email": uniqueEmail("real-code"),
			"code":  "1234",
		}, "")

		// Assert
		if status != http.StatusNotFound {
			t.Fatalf("expected not found, got status=%d", status)
		}
	})
}
