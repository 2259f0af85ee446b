package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/smashstrix/smashstrix/internal/account/entity"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
)

type SocialLoginInput struct {
	// Code is the Google OAuth authorization code.
	Code string `validate:"required"`
}

type SocialLoginOutput struct {
	AccessToken string
	// NewAccount is true when the login auto-provisioned the user.
	NewAccount bool
}

// SocialLogin signs in with a Google account. First-time users are created
// active since the identity provider already verified the email.
func (s *Usecase) SocialLogin(ctx context.Context, in SocialLoginInput) (*SocialLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "SocialLogin")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	profile, err := s.idp.ExchangeGoogle(ctx, in.Code)
	if err != nil {
		slog.WarnContext(ctx, "google code exchange failed", "error", err)
		return nil, goerror.NewBusiness("could not verify the Google sign-in", goerror.CodeUnauthorized)
	}

	email := strings.TrimSpace(strings.ToLower(profile.Email))
	if email == "" {
		return nil, goerror.NewBusiness("Google account has no email", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, goerror.ErrNotFound):
		created, pErr := s.provisionSocialUser(ctx, email, profile.FullName)
		if pErr != nil {
			return nil, pErr
		}

		access, tErr := s.jwt.Generate(jwt.TokenUser{ID: created.ID, Email: created.Email})
		if tErr != nil {
			slog.ErrorContext(ctx, "failed to generate access token", "user_id", created.ID, "error", tErr)
			return nil, goerror.NewServer(tErr)
		}
		return &SocialLoginOutput{AccessToken: access, NewAccount: true}, nil

	case err != nil:
		slog.ErrorContext(ctx, "failed to load user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.IsSuperuser {
		slog.WarnContext(ctx, "superuser social login refused", "user_id", user.ID)
		return nil, goerror.NewBusiness("this account cannot sign in here", goerror.CodeForbidden)
	}
	if user.IsBlocked {
		return nil, goerror.NewBusiness("account is blocked", goerror.CodeForbidden)
	}
	if !user.IsActive {
		// The provider vouches for the email, so a pending signup
		// verification is considered done.
		if err := s.repoDB.SetUserActive(ctx, user.ID); err != nil {
			slog.ErrorContext(ctx, "failed to activate user on social login", "user_id", user.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	access, err := s.jwt.Generate(jwt.TokenUser{ID: user.ID, Email: user.Email, Staff: user.IsStaff})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SocialLoginOutput{AccessToken: access}, nil
}

func (s *Usecase) provisionSocialUser(ctx context.Context, email, fullName string) (*entity.NewUser, error) {
	// Social accounts get an unguessable placeholder credential; password
	// login stays possible only after a password reset.
	placeholder, err := s.codes.Generate()
	if err != nil {
		return nil, goerror.NewServer(err)
	}
	placeholderHash, err := s.password.Hash(s.token.Generate() + placeholder)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash placeholder credential", "error", err)
		return nil, goerror.NewServer(err)
	}

	user := entity.NewUser{
		ID:       s.uid.Generate(),
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		IsActive: true,
	}
	if err := s.repoDB.CreateUser(ctx, user, string(placeholderHash)); err != nil {
		slog.ErrorContext(ctx, "failed to provision social user", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &user, nil
}
