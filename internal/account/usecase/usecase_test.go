package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/clock"
	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/mail"
	"github.com/smashstrix/smashstrix/internal/pkg/otpcode"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeRepoDB struct {
	getUserByID            func(ctx context.Context, id int64) (*entity.User, error)
	getUserByEmail         func(ctx context.Context, email string) (*entity.User, error)
	getUserByEmailOrMobile func(ctx context.Context, email, mobile string) (*entity.User, error)
	getUserLoginInfo       func(ctx context.Context, email string) (*entity.UserLoginInfo, error)
	getUserList            func(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)
	createUser             func(ctx context.Context, user entity.NewUser, passwordHash string) error
	deleteUser             func(ctx context.Context, id int64) error
	setUserActive          func(ctx context.Context, id int64) error
	setUserBlocked         func(ctx context.Context, id int64, blocked bool) error
	updateUserPassword     func(ctx context.Context, id int64, passwordHash string) error
	insertOTP              func(ctx context.Context, row entity.OTP) error
	claimOTP               func(ctx context.Context, userID int64, code string, now time.Time) (int64, error)
	getTOTPFactor          func(ctx context.Context, userID int64) (*entity.TOTPFactor, error)
	saveTOTPFactor         func(ctx context.Context, factor entity.TOTPFactor) error
	confirmTOTPFactor      func(ctx context.Context, id, userID int64) error
}

func (f *fakeRepoDB) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	if f.getUserByID == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getUserByID(ctx, id)
}

func (f *fakeRepoDB) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.getUserByEmail == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getUserByEmail(ctx, email)
}

func (f *fakeRepoDB) GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (*entity.User, error) {
	if f.getUserByEmailOrMobile == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getUserByEmailOrMobile(ctx, email, mobile)
}

func (f *fakeRepoDB) GetUserLoginInfo(ctx context.Context, email string) (*entity.UserLoginInfo, error) {
	if f.getUserLoginInfo == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getUserLoginInfo(ctx, email)
}

func (f *fakeRepoDB) GetUserList(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error) {
	if f.getUserList == nil {
		return nil, 0, nil
	}
	return f.getUserList(ctx, filter)
}

func (f *fakeRepoDB) CreateUser(ctx context.Context, user entity.NewUser, passwordHash string) error {
	if f.createUser == nil {
		return nil
	}
	return f.createUser(ctx, user, passwordHash)
}

func (f *fakeRepoDB) DeleteUser(ctx context.Context, id int64) error {
	if f.deleteUser == nil {
		return nil
	}
	return f.deleteUser(ctx, id)
}

func (f *fakeRepoDB) SetUserActive(ctx context.Context, id int64) error {
	if f.setUserActive == nil {
		return nil
	}
	return f.setUserActive(ctx, id)
}

func (f *fakeRepoDB) SetUserBlocked(ctx context.Context, id int64, blocked bool) error {
	if f.setUserBlocked == nil {
		return nil
	}
	return f.setUserBlocked(ctx, id, blocked)
}

func (f *fakeRepoDB) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	if f.updateUserPassword == nil {
		return nil
	}
	return f.updateUserPassword(ctx, id, passwordHash)
}

func (f *fakeRepoDB) InsertOTP(ctx context.Context, row entity.OTP) error {
	if f.insertOTP == nil {
		return nil
	}
	return f.insertOTP(ctx, row)
}

func (f *fakeRepoDB) ClaimOTP(ctx context.Context, userID int64, code string, now time.Time) (int64, error) {
	if f.claimOTP == nil {
		return 0, goerror.ErrNotFound
	}
	return f.claimOTP(ctx, userID, code, now)
}

func (f *fakeRepoDB) GetTOTPFactor(ctx context.Context, userID int64) (*entity.TOTPFactor, error) {
	if f.getTOTPFactor == nil {
		return nil, goerror.ErrNotFound
	}
	return f.getTOTPFactor(ctx, userID)
}

func (f *fakeRepoDB) SaveTOTPFactor(ctx context.Context, factor entity.TOTPFactor) error {
	if f.saveTOTPFactor == nil {
		return nil
	}
	return f.saveTOTPFactor(ctx, factor)
}

func (f *fakeRepoDB) ConfirmTOTPFactor(ctx context.Context, id, userID int64) error {
	if f.confirmTOTPFactor == nil {
		return nil
	}
	return f.confirmTOTPFactor(ctx, id, userID)
}

type fakeMessaging struct {
	verified        []UserVerifiedEvent
	passwordChanged []UserPasswordChangedEvent
}

func (f *fakeMessaging) PublishUserVerified(_ context.Context, msg UserVerifiedEvent) error {
	f.verified = append(f.verified, msg)
	return nil
}

func (f *fakeMessaging) PublishUserPasswordChanged(_ context.Context, msg UserPasswordChangedEvent) error {
	f.passwordChanged = append(f.passwordChanged, msg)
	return nil
}

type fakeIdentityProvider struct {
	exchangeGoogle func(ctx context.Context, code string) (*GoogleProfile, error)
}

func (f *fakeIdentityProvider) ExchangeGoogle(ctx context.Context, code string) (*GoogleProfile, error) {
	if f.exchangeGoogle == nil {
		return nil, errors.New("not configured")
	}
	return f.exchangeGoogle(ctx, code)
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeRevoker struct {
	revoked []string
}

func (f *fakeRevoker) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	f.revoked = append(f.revoked, tokenID)
	return nil
}

// memFlows is an in-memory session.Store. Expiry is not modeled; tests that
// need an absent flow simply never start one.
type memFlows struct {
	flows        map[string]session.Flow
	attempts     map[string]int64
	resendDenied bool
	resendChecks int
}

func newMemFlows() *memFlows {
	return &memFlows{
		flows:    make(map[string]session.Flow),
		attempts: make(map[string]int64),
	}
}

func (m *memFlows) Start(_ context.Context, token string, flow session.Flow, _ time.Duration) error {
	m.flows[token] = flow
	delete(m.attempts, token)
	return nil
}

func (m *memFlows) Get(_ context.Context, token string) (session.Flow, error) {
	flow, ok := m.flows[token]
	if !ok {
		return session.Flow{}, session.ErrNoFlow
	}
	return flow, nil
}

func (m *memFlows) Save(_ context.Context, token string, flow session.Flow) error {
	m.flows[token] = flow
	return nil
}

func (m *memFlows) End(_ context.Context, token string) error {
	delete(m.flows, token)
	delete(m.attempts, token)
	return nil
}

func (m *memFlows) IncrAttempts(_ context.Context, token string, _ time.Duration) (int64, error) {
	m.attempts[token]++
	return m.attempts[token], nil
}

func (m *memFlows) AllowResend(_ context.Context, token string, _ time.Duration) (bool, error) {
	m.resendChecks++
	return !m.resendDenied, nil
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type staticStringID struct{ value string }

func (s *staticStringID) Generate() string { return s.value }

// fakeHash records plaintexts and returns a marked hash so assertions can
// tell which input produced which stored value.
type fakeHash struct {
	hashed []string
	err    error
}

func (f *fakeHash) Hash(plaintext string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.hashed = append(f.hashed, plaintext)
	return []byte("hashed:" + plaintext), nil
}

func (f *fakeHash) Verify(hashed, plaintext string) bool {
	return hashed == "hashed:"+plaintext
}

type fixture struct {
	uc      *Usecase
	repoDB  *fakeRepoDB
	repoMQ  *fakeMessaging
	idp     *fakeIdentityProvider
	flows   *memFlows
	mailer  *fakeMailer
	revoker *fakeRevoker
	hash    *fakeHash
}

const testConfigYAML = `
modules:
  account:
    otp_ttl_minutes: 5
    otp_max_attempts: 5
    otp_resend_cooldown_seconds: 60
    staff_login_ttl_minutes: 5
`

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:    "smashstrix-test",
		Audiences: []string{"smashstrix-web"},
		TTL:       time.Hour,
		Clock:     clock.New(),
		TokenID:   &staticStringID{value: "token-id"},
	})
	require.NoError(t, err)

	fx := &fixture{
		repoDB:  &fakeRepoDB{},
		repoMQ:  &fakeMessaging{},
		idp:     &fakeIdentityProvider{},
		flows:   newMemFlows(),
		mailer:  &fakeMailer{},
		revoker: &fakeRevoker{},
		hash:    &fakeHash{},
	}

	fx.uc = New(Dependency{
		RepoDB:           fx.repoDB,
		RepoMessaging:    fx.repoMQ,
		IdentityProvider: fx.idp,
		Flows:            fx.flows,
		Mailer:           fx.mailer,
		Revoker:          fx.revoker,
		Validator:        v10,
		Config:           cfg,
		Password:         fx.hash,
		Codes:            &otpcode.Static{Code: "123456"},
		UID:              &seqNumberID{},
		Token:            &staticStringID{value: "flow-token"},
		Clock:            clock.NewFixed(testNow),
		JWT:              signer,
		Instrument:       instrument.NewNoop(),
	})

	return fx
}

func requireCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())
}
