package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/smashstrix/smashstrix/internal/account"
	"github.com/smashstrix/smashstrix/internal/pkg/clock"
	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/goroutine"
	"github.com/smashstrix/smashstrix/internal/pkg/hash"
	"github.com/smashstrix/smashstrix/internal/pkg/idempotency"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/mail"
	"github.com/smashstrix/smashstrix/internal/pkg/messaging"
	"github.com/smashstrix/smashstrix/internal/pkg/mfa"
	"github.com/smashstrix/smashstrix/internal/pkg/otp"
	"github.com/smashstrix/smashstrix/internal/pkg/otpcode"
	"github.com/smashstrix/smashstrix/internal/pkg/router"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/smashstrix/smashstrix/internal/pkg/storage"
	"github.com/smashstrix/smashstrix/internal/pkg/uid"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine    *goroutine.Manager
	validator    validator.Validator
	clock        clock.Clocker
	hmac         hash.Hash
	password     hash.Hash
	uid          uid.NumberID
	oid          uid.StringID
	uuid         uid.StringID
	codes        otpcode.Generator
	totp         otp.OTP
	jwt          jwt.JWT
	mfaEncryptor mfa.Encryptor

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	flows     session.Store
	denylist  *account.Denylist
	mailer    *mail.Dispatcher
	messaging messaging.Messaging
	storage   storage.Storage
	casbin    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App
// instance.
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
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
