package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/goerror"
	"github.com/rahmatfadli/goverify/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	fieldCode      = "code"
	fieldAttempts  = "attempts"
	fieldCreatedAt = "created_at"
)

// incrAttempts bumps the attempt counter only while the challenge hash still
// exists. A plain HINCRBY on an expired key would recreate it with just the
// counter field and no TTL.
var incrAttempts = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
return redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
`)

// Store keeps verification challenges in redis, one hash per channel address.
// The hash TTL is set once at creation so the challenge lifetime is absolute:
// resends and failed verifies never extend it.
type Store struct {
	client *redis.Client
	ins    instrument.Instrumentation
	prefix string
}

func NewStore(client *redis.Client, ins instrument.Instrumentation) *Store {
	return &Store{
		client: client,
		ins:    ins,
		prefix: "otp:",
	}
}

func (s *Store) key(ch entity.Channel, address string) string {
	return s.prefix + ch.String() + ":" + address
}

func (s *Store) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.outbound.cache").Start(ctx, name)
}

func (s *Store) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Store) GetChallenge(ctx context.Context, ch entity.Channel, address string) (_ *entity.Challenge, err error) {
	ctx, span := s.startSpan(ctx, "GetChallenge")
	defer func() { s.endSpan(span, err) }()

	fields, err := s.client.HGetAll(ctx, s.key(ch, address)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		err = goerror.ErrNotFound
		return nil, err
	}

	// A hash without its code or timestamp is a stray left by a write that
	// raced the TTL. Drop it and report the challenge as gone.
	if fields[fieldCode] == "" || fields[fieldCreatedAt] == "" {
		//nolint:errcheck // lazy cleanup, the key is already unusable
		s.client.Del(ctx, s.key(ch, address))

		err = goerror.ErrNotFound
		return nil, err
	}

	attempts, err := strconv.ParseInt(fields[fieldAttempts], 10, 64)
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, err
	}

	return &entity.Challenge{
		Channel:   ch,
		Address:   address,
		Code:      fields[fieldCode],
		Attempts:  attempts,
		CreatedAt: createdAt,
	}, nil
}

// CreateChallenge writes the challenge hash and its TTL atomically. The write
// is an upsert: when two sends race for the same address the last one wins.
func (s *Store) CreateChallenge(ctx context.Context, chal entity.Challenge, ttl time.Duration) (err error) {
	ctx, span := s.startSpan(ctx, "CreateChallenge")
	defer func() { s.endSpan(span, err) }()

	key := s.key(chal.Channel, chal.Address)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		fieldCode, chal.Code,
		fieldAttempts, chal.Attempts,
		fieldCreatedAt, chal.CreatedAt.Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, ttl)

	_, err = pipe.Exec(ctx)
	return err
}

// IncrementAttempts bumps the attempt counter and returns the new value.
// The script keeps concurrent bumps from losing updates and refuses to touch
// a challenge that already expired, reporting ErrNotFound instead.
func (s *Store) IncrementAttempts(ctx context.Context, ch entity.Channel, address string) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "IncrementAttempts")
	defer func() { s.endSpan(span, err) }()

	attempts, err := incrAttempts.Run(ctx, s.client, []string{s.key(ch, address)}, fieldAttempts).Int64()
	if err != nil {
		return 0, err
	}
	if attempts < 0 {
		err = goerror.ErrNotFound
		return 0, err
	}

	return attempts, nil
}

func (s *Store) DeleteChallenge(ctx context.Context, ch entity.Channel, address string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteChallenge")
	defer func() { s.endSpan(span, err) }()

	err = s.client.Del(ctx, s.key(ch, address)).Err()
	return err
}
