package usecase

import (
	"context"
	"testing"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
	"github.com/rahmatfadli/goverify/internal/pkg/jwt"
)

func authCtx(id int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id})
}

func TestEmailAdd(t *testing.T) {

	t.Run("AttachNewAddress", func(t *testing.T) {

		// Arrange
		acc := &entity.Account{ID: 1, Phone: "+15550001111", Password: "hash", PhoneVerified: true}
		f := newFixture(t, newMemRepo(acc), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.EmailAdd(authCtx(acc.ID), EmailAddInput{Email: "User@Example.com"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := f.repo.GetAccountByID(context.Background(), acc.ID)
		if got.Email != "user@example.com" {
			t.Fatalf("expected lowercased email stored, got %q", got.Email)
		}
		if got.EmailVerified {
			t.Fatal("expected new email to start unverified")
		}
	})

	t.Run("ReplaceDropsVerifiedFlag", func(t *testing.T) {

		// Arrange
		acc := &entity.Account{ID: 1, Phone: "+15550001111", Email: "old@example.com", EmailVerified: true, Password: "hash"}
		f := newFixture(t, newMemRepo(acc), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.EmailAdd(authCtx(acc.ID), EmailAddInput{Email: "new@example.com"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := f.repo.GetAccountByID(context.Background(), acc.ID)
		if got.Email != "new@example.com" || got.EmailVerified {
			t.Fatalf("expected replaced unverified email, got %q verified=%v", got.Email, got.EmailVerified)
		}
	})

	t.Run("SameOwnerIsNoop", func(t *testing.T) {

		// Arrange
		acc := &entity.Account{ID: 1, Phone: "+15550001111", Email: "user@example.com", EmailVerified: true, Password: "hash"}
		f := newFixture(t, newMemRepo(acc), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.EmailAdd(authCtx(acc.ID), EmailAddInput{Email: "user@example.com"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := f.repo.GetAccountByID(context.Background(), acc.ID)
		if !got.EmailVerified {
			t.Fatal("expected re-adding the same email to keep the verified flag")
		}
	})

	t.Run("TakenByOtherAccount", func(t *testing.T) {

		// Arrange
		owner := &entity.Account{ID: 1, Phone: "+15550001111", Email: "user@example.com", Password: "hash"}
		other := &entity.Account{ID: 2, Phone: "+15550002222", Password: "hash"}
		f := newFixture(t, newMemRepo(owner, other), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.EmailAdd(authCtx(other.ID), EmailAddInput{Email: "user@example.com"})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("WithoutAuth", func(t *testing.T) {

		// Arrange
		f := newFixture(t, newMemRepo(), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.EmailAdd(context.Background(), EmailAddInput{Email: "user@example.com"})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}
