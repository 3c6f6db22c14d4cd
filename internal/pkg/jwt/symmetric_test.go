package jwt

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

type fixedUUID struct{}

func (fixedUUID) Generate() string {
	return "token-id-1"
}

func testConfig(clk clocker, ttl time.Duration) Config {
	return Config{
		Secret:     []byte(strings.Repeat("s", 64)),
		Issuer:     "goverify",
		Audiences:  []string{"goverify"},
		TTLMinutes: ttl,
		Clock:      clk,
		UUID:       fixedUUID{},
	}
}

func TestNewHS512(t *testing.T) {

	t.Run("ShortSecret", func(t *testing.T) {

		// Arrange
		cfg := testConfig(fixedClock{time.Now()}, time.Minute)
		cfg.Secret = []byte("too short")

		// Act
		_, err := NewHS512(cfg)

		// Assert
		if !errors.Is(err, ErrSigningKeyTooShort) {
			t.Fatalf("expected key-too-short error, got %v", err)
		}
	})
}

func TestSymmetricGenerateVerify(t *testing.T) {

	t.Run("RoundTrip", func(t *testing.T) {

		// Arrange
		s, err := NewHS512(testConfig(fixedClock{time.Now()}, 15*time.Minute))
		if err != nil {
			t.Fatalf("new hs512: %v", err)
		}

		// Act
		token, err := s.Generate(42, "+15550001111")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		claims, err := s.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if claims.UserID != 42 || claims.UserPhone != "+15550001111" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		if claims.Issuer != "goverify" || claims.ID != "token-id-1" {
			t.Fatalf("unexpected registered claims: %+v", claims.RegisteredClaims)
		}
	})

	t.Run("Expired", func(t *testing.T) {

		// Arrange
		past := fixedClock{time.Now().Add(-2 * time.Hour)}
		s, err := NewHS512(testConfig(past, time.Minute))
		if err != nil {
			t.Fatalf("new hs512: %v", err)
		}

		// Act
		token, err := s.Generate(42, "+15550001111")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		_, err = s.Verify(token)

		// Assert
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected expired error, got %v", err)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {

		// Arrange
		signer, err := NewHS512(testConfig(fixedClock{time.Now()}, time.Minute))
		if err != nil {
			t.Fatalf("new hs512: %v", err)
		}

		otherCfg := testConfig(fixedClock{time.Now()}, time.Minute)
		otherCfg.Secret = []byte(strings.Repeat("x", 64))
		verifier, err := NewHS512(otherCfg)
		if err != nil {
			t.Fatalf("new hs512: %v", err)
		}

		// Act
		token, err := signer.Generate(42, "+15550001111")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		_, err = verifier.Verify(token)

		// Assert
		if err == nil {
			t.Fatal("expected verification failure for foreign signature")
		}
	})

	t.Run("Garbage", func(t *testing.T) {

		// Arrange
		s, err := NewHS512(testConfig(fixedClock{time.Now()}, time.Minute))
		if err != nil {
			t.Fatalf("new hs512: %v", err)
		}

		// Act
		_, err = s.Verify("not.a.token")

		// Assert
		if err == nil {
			t.Fatal("expected verification failure for malformed token")
		}
	})
}

func TestAuthContext(t *testing.T) {

	t.Run("RoundTrip", func(t *testing.T) {

		// Arrange
		claims := Claims{UserID: 7, UserPhone: "+15550001111"}

		// Act
		ctx := SetAuth(context.Background(), claims)
		got := GetAuth(ctx)

		// Assert
		if got == nil || got.UserID != 7 || got.UserPhone != "+15550001111" {
			t.Fatalf("unexpected claims: %+v", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {

		// Act
		got := GetAuth(context.Background())

		// Assert
		if got != nil {
			t.Fatalf("expected nil claims, got %+v", got)
		}
	})
}
