package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
	"github.com/rahmatfadli/goverify/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupStore(t *testing.T) (*Store, *redis.Client) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	opt, err := redis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}

	client := redis.NewClient(opt)
	t.Cleanup(func() { client.Close() })

	return NewStore(client, instrument.NewNoop()), client
}

func TestStoreChallenges(t *testing.T) {
	store, client := setupStore(t)
	ctx := context.Background()

	chal := entity.Challenge{
		Channel:   entity.ChannelPhone,
		Address:   "+15550001111",
		Code:      "1234",
		Attempts:  1,
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	t.Run("RoundTrip", func(t *testing.T) {

		// Act
		if err := store.CreateChallenge(ctx, chal, 5*time.Minute); err != nil {
			t.Fatalf("create challenge: %v", err)
		}
		got, err := store.GetChallenge(ctx, chal.Channel, chal.Address)

		// Assert
		if err != nil {
			t.Fatalf("get challenge: %v", err)
		}
		if got.Code != chal.Code || got.Attempts != chal.Attempts || !got.CreatedAt.Equal(chal.CreatedAt) {
			t.Fatalf("unexpected challenge: %+v", got)
		}

		ttl, err := client.TTL(ctx, store.key(chal.Channel, chal.Address)).Result()
		if err != nil {
			t.Fatalf("read ttl: %v", err)
		}
		if ttl <= 4*time.Minute || ttl > 5*time.Minute {
			t.Fatalf("expected ttl near 5m, got %v", ttl)
		}
	})

	t.Run("IncrementKeepsTTL", func(t *testing.T) {

		// Act
		attempts, err := store.IncrementAttempts(ctx, chal.Channel, chal.Address)

		// Assert
		if err != nil {
			t.Fatalf("increment attempts: %v", err)
		}
		if attempts != 2 {
			t.Fatalf("expected attempts 2, got %d", attempts)
		}

		ttl, _ := client.TTL(ctx, store.key(chal.Channel, chal.Address)).Result()
		if ttl > 5*time.Minute {
			t.Fatalf("expected lifetime to stay absolute, got ttl %v", ttl)
		}
	})

	t.Run("CreateOverwrites", func(t *testing.T) {

		// Arrange
		fresh := chal
		fresh.Code = "9999"
		fresh.Attempts = 1

		// Act
		if err := store.CreateChallenge(ctx, fresh, 5*time.Minute); err != nil {
			t.Fatalf("create challenge: %v", err)
		}

		// Assert
		got, _ := store.GetChallenge(ctx, chal.Channel, chal.Address)
		if got.Code != "9999" || got.Attempts != 1 {
			t.Fatalf("expected last write to win, got %+v", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {

		// Act
		if err := store.DeleteChallenge(ctx, chal.Channel, chal.Address); err != nil {
			t.Fatalf("delete challenge: %v", err)
		}

		// Assert
		_, err := store.GetChallenge(ctx, chal.Channel, chal.Address)
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("ChannelsDoNotCollide", func(t *testing.T) {

		// Arrange
		emailChal := chal
		emailChal.Channel = entity.ChannelEmail
		emailChal.Address = "user@example.com"

		// Act
		if err := store.CreateChallenge(ctx, emailChal, time.Minute); err != nil {
			t.Fatalf("create challenge: %v", err)
		}

		// Assert
		if _, err := store.GetChallenge(ctx, entity.ChannelPhone, emailChal.Address); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected phone namespace empty, got %v", err)
		}
	})

	t.Run("IncrementAfterExpiryDoesNotResurrect", func(t *testing.T) {

		// Arrange
		gone := chal
		gone.Address = "+15550003333"
		if err := store.CreateChallenge(ctx, gone, time.Second); err != nil {
			t.Fatalf("create challenge: %v", err)
		}
		time.Sleep(1500 * time.Millisecond)

		// Act
		_, err := store.IncrementAttempts(ctx, gone.Channel, gone.Address)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}

		exists, err := client.Exists(ctx, store.key(gone.Channel, gone.Address)).Result()
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if exists != 0 {
			t.Fatal("expected expired key to stay gone after increment")
		}
	})

	t.Run("PartialHashTreatedAsAbsent", func(t *testing.T) {

		// Arrange
		// An attempts-only hash is what a raw counter bump would leave on an
		// expired key.
		stray := chal
		stray.Address = "+15550004444"
		key := store.key(stray.Channel, stray.Address)
		if err := client.HSet(ctx, key, "attempts", 3).Err(); err != nil {
			t.Fatalf("seed stray hash: %v", err)
		}

		// Act
		_, err := store.GetChallenge(ctx, stray.Channel, stray.Address)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}

		exists, err := client.Exists(ctx, key).Result()
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if exists != 0 {
			t.Fatal("expected stray hash to be dropped on read")
		}
	})

	t.Run("Expiry", func(t *testing.T) {

		// Arrange
		short := chal
		short.Address = "+15550002222"

		// Act
		if err := store.CreateChallenge(ctx, short, time.Second); err != nil {
			t.Fatalf("create challenge: %v", err)
		}
		time.Sleep(1500 * time.Millisecond)

		// Assert
		_, err := store.GetChallenge(ctx, short.Channel, short.Address)
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected expired challenge, got %v", err)
		}
	})
}
