// Package inbound exposes the account module over HTTP.
package inbound

import (
	"context"

	"github.com/smashstrix/smashstrix/internal/account/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/router"
)

type uc interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) error
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) (*usecase.ResendOTPOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	LoginTOTP(ctx context.Context, in usecase.LoginTOTPInput) (*usecase.LoginTOTPOutput, error)
	SocialLogin(ctx context.Context, in usecase.SocialLoginInput) (*usecase.SocialLoginOutput, error)
	Logout(ctx context.Context) error

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) (*usecase.PasswordForgotOutput, error)
	SetNewPassword(ctx context.Context, in usecase.SetNewPasswordInput) error

	TOTPSetup(ctx context.Context) (*usecase.TOTPSetupOutput, error)
	TOTPConfirm(ctx context.Context, in usecase.TOTPConfirmInput) error

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
	UserBlockToggle(ctx context.Context, in usecase.UserBlockToggleInput) (*usecase.UserBlockToggleOutput, error)
}

// RegisterHTTPEndpoint mounts the account routes.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Signup & verification
	r.POST("/api/v1/account/signup", end.Signup)
	r.POST("/api/v1/account/otp/verify", end.VerifyOTP)
	r.POST("/api/v1/account/otp/resend", end.ResendOTP)

	// Sessions
	r.POST("/api/v1/account/login", end.Login)
	r.POST("/api/v1/account/login/totp", end.LoginTOTP)
	r.POST("/api/v1/account/login/google", end.SocialLogin)
	r.POST("/api/v1/account/logout", end.Logout) // needs authentication

	// Password recovery
	r.POST("/api/v1/account/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/account/password/reset", end.SetNewPassword)

	// Staff 2FA (need authentication)
	r.POST("/api/v1/account/totp/setup", end.TOTPSetup)
	r.POST("/api/v1/account/totp/confirm", end.TOTPConfirm)

	// Admin user directory (need authentication & authorization)
	r.GET("/api/v1/account/users", end.UserList, r.Authorize("users", "read"))
	r.PATCH("/api/v1/account/users/:id/block", end.UserBlockToggle, r.Authorize("users", "update"))
}

// PublicRoutes lists the endpoints reachable without a token.
func PublicRoutes() map[string][]string {
	return map[string][]string{
		"POST": {
			"/api/v1/account/signup",
			"/api/v1/account/otp/verify",
			"/api/v1/account/otp/resend",
			"/api/v1/account/login",
			"/api/v1/account/login/totp",
			"/api/v1/account/login/google",
			"/api/v1/account/password/forgot",
			"/api/v1/account/password/reset",
		},
	}
}
