package tests

import (
	"net/http"
	"testing"
)

func TestRegister(t *testing.T) {

	// Arrange
	phone := uniquePhone()

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"phone":    phone,
		"password": "Secret123!",
	}, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	t.Run("DuplicatePhone", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"phone":    phone,
			"password": "Secret123!",
		}, "")

		// Assert
		if status != http.StatusConflict {
			t.Fatalf("expected conflict, got status=%d", status)
		}
	})

	t.Run("ShortPassword", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"phone":    uniquePhone(),
			"password": "short",
		}, "")

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected validation error, got status=%d", status)
		}
	})
}
