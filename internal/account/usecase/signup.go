package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/session"
)

type SignupInput struct {
	FullName        string `validate:"required,min=3,max=100"`
	Email           string `validate:"required,email"`
	MobileNumber    string `validate:"required,mobile"`
	Password        string `validate:"required,password"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	ReferralCode    string `validate:"omitempty,max=32"`
}

type SignupOutput struct {
	// FlowToken identifies the pending signup-verification flow.
	FlowToken string
}

// Signup creates an inactive account and issues a verification OTP. When the
// verification email cannot be delivered, the account is removed again so
// the address stays free for a retry.
func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetUserByEmailOrMobile(ctx, in.Email, in.MobileNumber)
	if err == nil {
		return nil, goerror.NewBusiness("Email or mobile number already exists", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to check existing user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	passwordHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	user := entity.NewUser{
		ID:           s.uid.Generate(),
		FullName:     in.FullName,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		ReferralCode: strings.TrimSpace(in.ReferralCode),
	}
	if err := s.repoDB.CreateUser(ctx, user, string(passwordHash)); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Email or mobile number already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.issueOTP(ctx, otpRecipient{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}, session.PurposeSignupVerification)
	if errors.Is(err, errDispatchFailed) {
		if dErr := s.repoDB.DeleteUser(ctx, user.ID); dErr != nil {
			slog.ErrorContext(ctx, "failed to roll back user after dispatch failure", "user_id", user.ID, "error", dErr)
		}
		return nil, goerror.NewDependency("could not send the verification email, please try again")
	}
	if err != nil {
		return nil, err
	}

	return &SignupOutput{FlowToken: token}, nil
}
