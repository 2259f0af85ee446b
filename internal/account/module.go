// Package account owns users, sessions, and the OTP verification and
// recovery engine.
package account

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/smashstrix/smashstrix/internal/account/inbound"
	"github.com/smashstrix/smashstrix/internal/account/outbound/cache"
	"github.com/smashstrix/smashstrix/internal/account/outbound/db"
	"github.com/smashstrix/smashstrix/internal/account/outbound/idp"
	"github.com/smashstrix/smashstrix/internal/account/outbound/mq"
	"github.com/smashstrix/smashstrix/internal/account/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/clock"
	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/goroutine"
	"github.com/smashstrix/smashstrix/internal/pkg/hash"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/mail"
	"github.com/smashstrix/smashstrix/internal/pkg/messaging"
	"github.com/smashstrix/smashstrix/internal/pkg/mfa"
	"github.com/smashstrix/smashstrix/internal/pkg/otp"
	"github.com/smashstrix/smashstrix/internal/pkg/otpcode"
	"github.com/smashstrix/smashstrix/internal/pkg/router"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/smashstrix/smashstrix/internal/pkg/uid"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"
)

// Denylist is the revoked token store shared with the router's
// authentication middleware.
type Denylist = cache.Denylist

// NewDenylist builds the token denylist. The application creates it before
// the router so logout revocation can feed the authentication middleware.
func NewDenylist(client *redis.Client) *Denylist {
	return cache.NewDenylist(client)
}

// Dependency lists everything the module needs from the application.
type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	Denylist     *cache.Denylist            `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Messaging    messaging.Messaging        `validate:"required"`
	Mailer       *mail.Dispatcher           `validate:"required"`
	Flows        session.Store              `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	Token        uid.StringID               `validate:"required"`
	Password     hash.Hash                  `validate:"required"`
	Codes        otpcode.Generator          `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         otp.OTP                    `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
	JWT          jwt.JWT                    `validate:"required"`
}

// New wires the account module and mounts its routes.
func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		IdentityProvider: idp.NewGoogle(idp.GoogleOptions{
			ClientID:     dep.Config.GetString("modules.account.google.client_id"),
			ClientSecret: dep.Config.GetString("modules.account.google.client_secret"),
			RedirectURL:  dep.Config.GetString("modules.account.google.redirect_url"),
		}, dep.Instrument),
		Flows:        dep.Flows,
		Mailer:       dep.Mailer,
		Revoker:      dep.Denylist,
		Validator:    dep.Validator,
		Config:       dep.Config,
		Password:     dep.Password,
		Codes:        dep.Codes,
		UID:          dep.UID,
		Token:        dep.Token,
		Totp:         dep.Totp,
		MFAEncryptor: dep.MFAEncryptor,
		Clock:        dep.Clock,
		JWT:          dep.JWT,
		Instrument:   dep.Instrument,
		Goroutine:    dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

// PublicRoutes exposes the unauthenticated endpoints for router setup.
func PublicRoutes() map[string][]string {
	return inbound.PublicRoutes()
}
