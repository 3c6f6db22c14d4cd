package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahmatfadli/goverify/internal/auth/outbound/gateway"
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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine  *goroutine.Manager
	validator  validator.Validator
	clock      clock.Clocker
	bcrypt     hash.Hash
	uid        uid.NumberID
	uuid       uid.StringID
	jwtAccess  jwt.JWT
	jwtRefresh jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	mail      mail.Mail
	sms       *gateway.SMSClient

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initGateway()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
