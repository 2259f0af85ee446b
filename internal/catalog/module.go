// Package catalog owns categories, brands, products, and the staff
// dashboard.
package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smashstrix/smashstrix/internal/catalog/inbound"
	"github.com/smashstrix/smashstrix/internal/catalog/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/clock"
	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/router"
	"github.com/smashstrix/smashstrix/internal/pkg/storage"
	"github.com/smashstrix/smashstrix/internal/pkg/uid"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"

	catalogdb "github.com/smashstrix/smashstrix/internal/catalog/outbound/db"
)

// Dependency lists everything the module needs from the application.
type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Media      storage.Storage            `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Token      uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// New wires the catalog module and mounts its routes.
func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     catalogdb.NewDB(dep.DBConn, dep.Instrument),
		Media:      dep.Media,
		Validator:  dep.Validator,
		Config:     dep.Config,
		UID:        dep.UID,
		Token:      dep.Token,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

// PublicRoutes exposes the unauthenticated endpoints for router setup.
func PublicRoutes() map[string][]string {
	return inbound.PublicRoutes()
}
