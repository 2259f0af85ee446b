package app

import (
	"log/slog"
	"os"

	"github.com/smashstrix/smashstrix/internal/account"
	"github.com/smashstrix/smashstrix/internal/catalog"
	"github.com/smashstrix/smashstrix/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.account.enabled") {
		if err := account.New(account.Dependency{
			DBConn:       a.dbConn,
			Denylist:     a.denylist,
			Goroutine:    a.goroutine,
			Router:       a.router,
			Messaging:    a.messaging,
			Mailer:       a.mailer,
			Flows:        a.flows,
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			Token:        a.uuid,
			Password:     a.password,
			Codes:        a.codes,
			MFAEncryptor: a.mfaEncryptor,
			Clock:        a.clock,
			Totp:         a.totp,
			Validator:    a.validator,
			JWT:          a.jwt,
		}); err != nil {
			slog.Error("failed to init module account", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.catalog.enabled") {
		if err := catalog.New(catalog.Dependency{
			DBConn:     a.dbConn,
			Media:      a.storage,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Token:      a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module catalog", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(a.ctx, notification.Dependency{
			Messaging:   a.messaging,
			Mailer:      a.mailer,
			Idempotency: a.idemp,
			Goroutine:   a.goroutine,
			Instrument:  a.ins,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
