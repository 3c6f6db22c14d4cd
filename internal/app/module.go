package app

import (
	"log/slog"
	"os"

	"github.com/rahmatfadli/goverify/internal/auth"
)

func (a *App) initModules() {
	if err := auth.New(auth.Dependency{
		DBConn:     a.dbConn,
		CacheConn:  a.cacheConn,
		Router:     a.router,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		Bcrypt:     a.bcrypt,
		Clock:      a.clock,
		Validator:  a.validator,
		JWTAccess:  a.jwtAccess,
		JWTRefresh: a.jwtRefresh,
		Mail:       a.mail,
		SMS:        a.sms,
		Goroutine:  a.goroutine,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}
}
