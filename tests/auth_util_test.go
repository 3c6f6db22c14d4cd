package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

const (
	// Seeded verified account, see the seed script in the deployment repo.
	verifiedPhone    = "+15550001111"
	verifiedPassword = "Secret123!"
)

type loginData struct {
	AccessToken string `json:"access_token"`
}

func login(t *testing.T, phone, password string) (loginData, []*http.Cookie) {
	t.Helper()

	payload := map[string]string{
		"phone":    phone,
		"password": password,
	}

	status, body, cookies := doJSONCookies(t, http.MethodPost, "/api/v1/auth/login", payload, "", nil)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
	}

	var data loginData
	decodeSuccess(t, body, &data)

	return data, cookies
}

func accessToken(t *testing.T) string {
	t.Helper()

	resp, _ := login(t, verifiedPhone, verifiedPassword)
	if resp.AccessToken == "" {
		t.Fatal("missing access token")
	}

	return resp.AccessToken
}

func refreshCookie(t *testing.T, cookies []*http.Cookie) *http.Cookie {
	t.Helper()

	for _, c := range cookies {
		if c.Name == "refresh" {
			return c
		}
	}
	t.Fatal("missing refresh cookie")

	return nil
}

func uniquePhone() string {
	return fmt.Sprintf("+1555%07d", time.Now().UnixNano()%10000000)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func registerAccount(t *testing.T, phone, password string) {
	t.Helper()

	payload := map[string]string{
		"phone":    phone,
		"password": password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/register", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}
}
