package usecase

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/rahmatfadli/goverify/internal/auth/entity"
	"github.com/rahmatfadli/goverify/internal/pkg/clock"
	"github.com/rahmatfadli/goverify/internal/pkg/goroutine"
	"github.com/rahmatfadli/goverify/internal/pkg/hash"
	"github.com/rahmatfadli/goverify/internal/pkg/instrument"
	"github.com/rahmatfadli/goverify/internal/pkg/jwt"
	"github.com/rahmatfadli/goverify/internal/pkg/uid"
	"github.com/rahmatfadli/goverify/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// Verification code policy. The send and verify ceilings are deliberately
// different.
const (
	codeSendLimit   = 3
	codeVerifyLimit = 5
	challengeTTL    = 5 * time.Minute
)

type repoDB interface {
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	GetAccountByPhone(ctx context.Context, phone string) (*entity.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)

	CreateAccount(ctx context.Context, acc entity.NewAccount, hash string) error

	SetAccountEmail(ctx context.Context, id int64, email string) error
	SetChannelVerified(ctx context.Context, id int64, ch entity.Channel) error
	UpdateAccountPassword(ctx context.Context, id int64, hash string) error
}

type codeStore interface {
	GetChallenge(ctx context.Context, ch entity.Channel, address string) (*entity.Challenge, error)
	CreateChallenge(ctx context.Context, chal entity.Challenge, ttl time.Duration) error
	IncrementAttempts(ctx context.Context, ch entity.Channel, address string) (int64, error)
	DeleteChallenge(ctx context.Context, ch entity.Channel, address string) error
}

type codeGateway interface {
	SendCode(ctx context.Context, ch entity.Channel, address, code string) error
}

type Usecase struct {
	repoDB     repoDB
	store      codeStore
	gateway    codeGateway
	validator  validator.Validator
	bcrypt     hash.Hash
	uid        uid.NumberID
	clock      clock.Clocker
	jwtAccess  jwt.JWT
	jwtRefresh jwt.JWT
	ins        instrument.Instrumentation
	gr         *goroutine.Manager
	newCode    func() string
}

type Dependency struct {
	RepoDB     repoDB
	Store      codeStore
	Gateway    codeGateway
	Validator  validator.Validator
	Bcrypt     hash.Hash
	UID        uid.NumberID
	Clock      clock.Clocker
	JWTAccess  jwt.JWT
	JWTRefresh jwt.JWT
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager

	// CodeGenerator overrides verification code generation, mainly for tests.
	CodeGenerator func() string
}

func New(dep Dependency) *Usecase {
	newCode := dep.CodeGenerator
	if newCode == nil {
		newCode = randomCode
	}

	return &Usecase{
		repoDB:     dep.RepoDB,
		store:      dep.Store,
		gateway:    dep.Gateway,
		validator:  dep.Validator,
		bcrypt:     dep.Bcrypt,
		uid:        dep.UID,
		clock:      dep.Clock,
		jwtAccess:  dep.JWTAccess,
		jwtRefresh: dep.JWTRefresh,
		ins:        dep.Instrument,
		gr:         dep.Goroutine,
		newCode:    newCode,
	}
}

// randomCode draws a uniform 4-digit code, 1000 through 9999.
func randomCode() string {
	return strconv.Itoa(rand.IntN(9000) + 1000)
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}
