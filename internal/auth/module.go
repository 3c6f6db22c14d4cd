package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahmatfadli/goverify/internal/auth/inbound"
	"github.com/rahmatfadli/goverify/internal/auth/outbound/cache"
	"github.com/rahmatfadli/goverify/internal/auth/outbound/db"
	"github.com/rahmatfadli/goverify/internal/auth/outbound/gateway"
	"github.com/rahmatfadli/goverify/internal/auth/usecase"
	"github.com/rahmatfadli/goverify/internal/pkg/clock"
	"github.com/rahmatfadli/goverify/internal/pkg/config"
	"github.com/rahmatfadli/goverify/internal/pkg/goroutine"
	"github.com/rahmatfadli/goverify/internal/pkg/hash"
	"github.com/rahmatfadli/goverify/internal/pkg/instrument"
	"github.com/rahmatfadli/goverify/internal/pkg/jwt"
	"github.com/rahmatfadli/goverify/internal/pkg/mail"
	"github.com/rahmatfadli/goverify/internal/pkg/router"
	"github.com/rahmatfadli/goverify/internal/pkg/uid"
	"github.com/rahmatfadli/goverify/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWTAccess  jwt.JWT                    `validate:"required"`
	JWTRefresh jwt.JWT                    `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	SMS        *gateway.SMSClient         `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	store := cache.NewStore(dep.CacheConn, dep.Instrument)
	gw := gateway.NewGateway(dep.SMS, dep.Mail, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     repoDB,
		Store:      store,
		Gateway:    gw,
		Validator:  dep.Validator,
		Bcrypt:     dep.Bcrypt,
		UID:        dep.UID,
		Clock:      dep.Clock,
		JWTAccess:  dep.JWTAccess,
		JWTRefresh: dep.JWTRefresh,
		Instrument: dep.Instrument,
		Goroutine:  dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetMinute("jwt.refresh.ttl_minutes"))

	return nil
}
