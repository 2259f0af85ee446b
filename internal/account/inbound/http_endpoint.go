package inbound

import (
	"github.com/smashstrix/smashstrix/internal/account/usecase"
	"github.com/smashstrix/smashstrix/internal/pkg/router"
)

// HTTPEndpoint holds the HTTP handlers for account workflows.
type HTTPEndpoint struct {
	uc uc
}

// Signup creates an inactive account and starts email verification.
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		FullName:        req.FullName,
		Email:           req.Email,
		MobileNumber:    req.MobileNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		ReferralCode:    req.ReferralCode,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{FlowToken: resp.FlowToken}, nil
}

// VerifyOTP claims a verification code against the pending flow.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	if err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		FlowToken: req.FlowToken,
		Code:      req.Code,
	}); err != nil {
		return nil, err
	}

	return VerifyOTPResponse{}, nil
}

// ResendOTP sends a fresh code for the pending flow.
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	var req ResendOTPRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ResendOTP(r.Context(), usecase.ResendOTPInput{FlowToken: req.FlowToken})
	if err != nil {
		return nil, err
	}

	return ResendOTPResponse{Sent: resp.Sent}, nil
}

// Login authenticates with email and password.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		TOTPRequired: resp.TOTPRequired,
		FlowToken:    resp.FlowToken,
		AccessToken:  resp.AccessToken,
	}, nil
}

// LoginTOTP finishes a staff login with an authenticator code.
func (h *HTTPEndpoint) LoginTOTP(r *router.Request) (any, error) {
	var req LoginTOTPRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginTOTP(r.Context(), usecase.LoginTOTPInput{
		FlowToken: req.FlowToken,
		Code:      req.Code,
	})
	if err != nil {
		return nil, err
	}

	return LoginTOTPResponse{AccessToken: resp.AccessToken}, nil
}

// SocialLogin signs in with a Google authorization code.
func (h *HTTPEndpoint) SocialLogin(r *router.Request) (any, error) {
	var req SocialLoginRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SocialLogin(r.Context(), usecase.SocialLoginInput{Code: req.Code})
	if err != nil {
		return nil, err
	}

	return SocialLoginResponse{AccessToken: resp.AccessToken, NewAccount: resp.NewAccount}, nil
}

// Logout revokes the caller's access token.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}
	return nil, nil
}

// PasswordForgot starts the OTP-based password reset.
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return PasswordForgotResponse{FlowToken: resp.FlowToken}, nil
}

// SetNewPassword finishes a verified password reset.
func (h *HTTPEndpoint) SetNewPassword(r *router.Request) (any, error) {
	var req SetNewPasswordRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	if err := h.uc.SetNewPassword(r.Context(), usecase.SetNewPasswordInput{
		FlowToken:       req.FlowToken,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return nil, err
	}

	return SetNewPasswordResponse{}, nil
}

// TOTPSetup starts staff authenticator enrollment.
func (h *HTTPEndpoint) TOTPSetup(r *router.Request) (any, error) {
	resp, err := h.uc.TOTPSetup(r.Context())
	if err != nil {
		return nil, err
	}

	return TOTPSetupResponse{Secret: resp.Secret, URI: resp.URI}, nil
}

// TOTPConfirm arms the enrolled authenticator.
func (h *HTTPEndpoint) TOTPConfirm(r *router.Request) (any, error) {
	var req TOTPConfirmRequest
	if err := r.Bind(&req); err != nil {
		return nil, err
	}

	if err := h.uc.TOTPConfirm(r.Context(), usecase.TOTPConfirmInput{Code: req.Code}); err != nil {
		return nil, err
	}

	return nil, nil
}

// UserList pages through the admin user directory.
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	page, err := r.QueryInt64("page", 1)
	if err != nil {
		return nil, err
	}
	size, err := r.QueryInt64("size", 20)
	if err != nil {
		return nil, err
	}
	blocked, err := r.QueryBool("blocked")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserList(r.Context(), usecase.UserListInput{
		Search:  r.Query("search"),
		Blocked: blocked,
		Page:    page,
		Size:    size,
	})
	if err != nil {
		return nil, err
	}

	users := make([]UserItem, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, UserItem{
			ID:           u.ID,
			FullName:     u.FullName,
			Email:        u.Email,
			MobileNumber: u.MobileNumber,
			IsActive:     u.IsActive,
			IsBlocked:    u.IsBlocked,
			IsStaff:      u.IsStaff,
		})
	}

	return UserListResponse{
		Users: users,
		meta: map[string]any{
			"total": resp.Total,
			"page":  resp.Page,
			"size":  resp.Size,
		},
	}, nil
}

// UserBlockToggle flips the blocked flag on an account.
func (h *HTTPEndpoint) UserBlockToggle(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserBlockToggle(r.Context(), usecase.UserBlockToggleInput{UserID: id})
	if err != nil {
		return nil, err
	}

	return UserBlockToggleResponse{UserID: resp.UserID, IsBlocked: resp.IsBlocked}, nil
}
