package usecase

import (
	"context"
	"time"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/clock"
	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/goroutine"
	"github.com/smashstrix/smashstrix/internal/pkg/hash"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/mail"
	"github.com/smashstrix/smashstrix/internal/pkg/mfa"
	"github.com/smashstrix/smashstrix/internal/pkg/otp"
	"github.com/smashstrix/smashstrix/internal/pkg/otpcode"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/smashstrix/smashstrix/internal/pkg/uid"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// UserVerifiedEvent announces a completed signup verification.
type UserVerifiedEvent struct {
	UserID   int64
	Email    string
	FullName string
}

// UserPasswordChangedEvent announces a completed password reset.
type UserPasswordChangedEvent struct {
	UserID int64
	Email  string
}

// GoogleProfile is the identity returned by the Google userinfo endpoint.
type GoogleProfile struct {
	Subject  string
	Email    string
	FullName string
}

type repoDB interface {
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (*entity.User, error)
	GetUserLoginInfo(ctx context.Context, email string) (*entity.UserLoginInfo, error)
	GetUserList(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)

	CreateUser(ctx context.Context, user entity.NewUser, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error
	SetUserActive(ctx context.Context, id int64) error
	SetUserBlocked(ctx context.Context, id int64, blocked bool) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error

	InsertOTP(ctx context.Context, row entity.OTP) error
	// ClaimOTP consumes one unexpired code for the user in a single
	// conditional delete and returns the claimed row id.
	// goerror.ErrNotFound means nothing matched: wrong, expired, or absent.
	ClaimOTP(ctx context.Context, userID int64, code string, now time.Time) (int64, error)

	GetTOTPFactor(ctx context.Context, userID int64) (*entity.TOTPFactor, error)
	SaveTOTPFactor(ctx context.Context, factor entity.TOTPFactor) error
	ConfirmTOTPFactor(ctx context.Context, id, userID int64) error
}

type repoMessaging interface {
	PublishUserVerified(ctx context.Context, msg UserVerifiedEvent) error
	PublishUserPasswordChanged(ctx context.Context, msg UserPasswordChangedEvent) error
}

type repoIdentityProvider interface {
	// ExchangeGoogle swaps an authorization code for the user's profile.
	ExchangeGoogle(ctx context.Context, code string) (*GoogleProfile, error)
}

type mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

type tokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// Usecase implements the account operations.
type Usecase struct {
	repoDB    repoDB
	repoMQ    repoMessaging
	idp       repoIdentityProvider
	flows     session.Store
	mailer    mailer
	revoker   tokenRevoker
	validator validator.Validator
	cfg       config.Config
	password  hash.Hash
	codes     otpcode.Generator
	uid       uid.NumberID
	token     uid.StringID
	totp      otp.OTP
	mfaEnc    mfa.Encryptor
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

// Dependency lists what Usecase needs; all fields are required.
type Dependency struct {
	RepoDB           repoDB
	RepoMessaging    repoMessaging
	IdentityProvider repoIdentityProvider
	Flows            session.Store
	Mailer           mailer
	Revoker          tokenRevoker
	Validator        validator.Validator
	Config           config.Config
	Password         hash.Hash
	Codes            otpcode.Generator
	UID              uid.NumberID
	Token            uid.StringID
	Totp             otp.OTP
	MFAEncryptor     mfa.Encryptor
	Clock            clock.Clocker
	JWT              jwt.JWT
	Instrument       instrument.Instrumentation
	Goroutine        *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMQ:    dep.RepoMessaging,
		idp:       dep.IdentityProvider,
		flows:     dep.Flows,
		mailer:    dep.Mailer,
		revoker:   dep.Revoker,
		validator: dep.Validator,
		cfg:       dep.Config,
		password:  dep.Password,
		codes:     dep.Codes,
		uid:       dep.UID,
		token:     dep.Token,
		totp:      dep.Totp,
		mfaEnc:    dep.MFAEncryptor,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	ttl := s.cfg.GetMinute("modules.account.otp_ttl_minutes")
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return ttl
}

func (s *Usecase) maxVerifyAttempts() int64 {
	max := s.cfg.GetInt64("modules.account.otp_max_attempts")
	if max <= 0 {
		max = 5
	}
	return max
}

func (s *Usecase) requireStaff(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if !clm.IsStaff {
		return nil, goerror.NewBusiness("staff account required", goerror.CodeForbidden)
	}
	return clm, nil
}
