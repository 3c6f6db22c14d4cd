package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
)

func TestPhoneCodeSend(t *testing.T) {

	account := &entity.Account{ID: 1, Phone: "+15550001111", Password: "hash"}

	t.Run("FirstSend", func(t *testing.T) {

		// Arrange
		f := newFixture(t, newMemRepo(account), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.PhoneCodeSend(context.Background(), PhoneCodeSendInput{Phone: account.Phone})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.gateway.sent) != 1 || f.gateway.sent[0].code != "1234" || f.gateway.sent[0].address != account.Phone {
			t.Fatalf("unexpected deliveries: %+v", f.gateway.sent)
		}

		chal, err := f.store.GetChallenge(context.Background(), entity.ChannelPhone, account.Phone)
		if err != nil {
			t.Fatalf("expected stored challenge: %v", err)
		}
		if chal.Code != "1234" || chal.Attempts != 1 || !chal.CreatedAt.Equal(testNow) {
			t.Fatalf("unexpected challenge: %+v", chal)
		}
		if ttl := f.store.ttls[storeKey(entity.ChannelPhone, account.Phone)]; ttl != 5*time.Minute {
			t.Fatalf("expected 5m ttl, got %v", ttl)
		}
	})

	t.Run("ResendReusesCode", func(t *testing.T) {

		// Arrange
		live := &entity.Challenge{
			Channel:   entity.ChannelPhone,
			Address:   account.Phone,
			Code:      "7777",
			Attempts:  1,
			CreatedAt: testNow.Add(-time.Minute),
		}
		f := newFixture(t, newMemRepo(account), newMemStore(live), &fakeGateway{})

		// Act
		err := f.uc.PhoneCodeSend(context.Background(), PhoneCodeSendInput{Phone: account.Phone})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.gateway.sent) != 1 || f.gateway.sent[0].code != "7777" {
			t.Fatalf("expected the live code to be resent, got %+v", f.gateway.sent)
		}

		chal, _ := f.store.GetChallenge(context.Background(), entity.ChannelPhone, account.Phone)
		if chal.Attempts != 2 {
			t.Fatalf("expected attempts bumped to 2, got %d", chal.Attempts)
		}
		if !chal.CreatedAt.Equal(live.CreatedAt) {
			t.Fatal("expected challenge lifetime to stay absolute on resend")
		}
		if f.store.creates != 0 {
			t.Fatal("expected no rewrite of the live challenge")
		}
		if *f.draws != 0 {
			t.Fatalf("expected no code draw on resend, got %d", *f.draws)
		}
	})

	t.Run("SendLimitReached", func(t *testing.T) {

		// Arrange
		live := &entity.Challenge{
			Channel:   entity.ChannelPhone,
			Address:   account.Phone,
			Code:      "7777",
			Attempts:  3,
			CreatedAt: testNow.Add(-time.Minute),
		}
		f := newFixture(t, newMemRepo(account), newMemStore(live), &fakeGateway{})

		// Act
		err := f.uc.PhoneCodeSend(context.Background(), PhoneCodeSendInput{Phone: account.Phone})

		// Assert
		assertCode(t, err, goerror.CodeTooManyRequest)
		if len(f.gateway.sent) != 0 {
			t.Fatal("expected no delivery after the send ceiling")
		}
		if *f.draws != 0 {
			t.Fatalf("expected no code draw at the ceiling, got %d", *f.draws)
		}
	})

	t.Run("ChallengeExpiredDuringSend", func(t *testing.T) {

		// Arrange
		live := &entity.Challenge{
			Channel:   entity.ChannelPhone,
			Address:   account.Phone,
			Code:      "7777",
			Attempts:  2,
			CreatedAt: testNow.Add(-time.Minute),
		}
		store := newMemStore(live)
		store.incrErr = goerror.ErrNotFound
		f := newFixture(t, newMemRepo(account), store, &fakeGateway{})

		// Act
		err := f.uc.PhoneCodeSend(context.Background(), PhoneCodeSendInput{Phone: account.Phone})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.gateway.sent) != 1 || f.gateway.sent[0].code != "7777" {
			t.Fatalf("unexpected deliveries: %+v", f.gateway.sent)
		}

		// The delivered code starts a fresh challenge when the old one
		// expired mid-send.
		if f.store.creates != 1 {
			t.Fatalf("expected a fresh challenge write, got %d", f.store.creates)
		}
		chal, _ := f.store.GetChallenge(context.Background(), entity.ChannelPhone, account.Phone)
		if chal.Code != "7777" || chal.Attempts != 1 || !chal.CreatedAt.Equal(testNow) {
			t.Fatalf("unexpected challenge: %+v", chal)
		}
	})

	t.Run("DeliveryFailureMutatesNothing", func(t *testing.T) {

		// Arrange
		f := newFixture(t, newMemRepo(account), newMemStore(), &fakeGateway{err: context.DeadlineExceeded})

		// Act
		err := f.uc.PhoneCodeSend(context.Background(), PhoneCodeSendInput{Phone: account.Phone})

		// Assert
		assertCode(t, err, goerror.CodeInternal)
		if _, err := f.store.GetChallenge(context.Background(), entity.ChannelPhone, account.Phone); err == nil {
			t.Fatal("expected no challenge after failed delivery")
		}

		// A retry after the provider recovers starts a fresh challenge.
		f.gateway.err = nil
		if err := f.uc.PhoneCodeSend(context.Background(), PhoneCodeSendInput{Phone: account.Phone}); err != nil {
			t.Fatalf("unexpected error on retry: %v", err)
		}
		chal, _ := f.store.GetChallenge(context.Background(), entity.ChannelPhone, account.Phone)
		if chal.Attempts != 1 {
			t.Fatalf("expected fresh challenge after retry, got attempts=%d", chal.Attempts)
		}
	})

	t.Run("AccountNotFound", func(t *testing.T) {

		// Arrange
		f := newFixture(t, newMemRepo(), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.PhoneCodeSend(context.Background(), PhoneCodeSendInput{Phone: "+15550009999"})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("InvalidPhone", func(t *testing.T) {

		// Arrange
		f := newFixture(t, newMemRepo(account), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.PhoneCodeSend(context.Background(), PhoneCodeSendInput{Phone: "abc"})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})
}

func TestEmailCodeSend(t *testing.T) {

	account := &entity.Account{ID: 1, Phone: "+15550001111", Email: "user@example.com", Password: "hash"}

	t.Run("Success", func(t *testing.T) {

		// Arrange
		f := newFixture(t, newMemRepo(account), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.EmailCodeSend(context.Background(), EmailCodeSendInput{Email: "User@Example.com"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.gateway.sent) != 1 || f.gateway.sent[0].channel != entity.ChannelEmail || f.gateway.sent[0].address != account.Email {
			t.Fatalf("unexpected deliveries: %+v", f.gateway.sent)
		}
	})

	t.Run("AccountNotFound", func(t *testing.T) {

		// Arrange
		f := newFixture(t, newMemRepo(account), newMemStore(), &fakeGateway{})

		// Act
		err := f.uc.EmailCodeSend(context.Background(), EmailCodeSendInput{Email: "other@example.com"})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})
}
