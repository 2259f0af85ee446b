package inbound

type SignupRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	MobileNumber    string `json:"mobile_number"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	ReferralCode    string `json:"referral_code,omitempty"`
}

type SignupResponse struct {
	FlowToken string `json:"flow_token"`
}

func (SignupResponse) Message() string {
	return "Account created. Enter the code we emailed you to verify it."
}

type VerifyOTPRequest struct {
	FlowToken string `json:"flow_token"`
	Code      string `json:"code"`
}

type VerifyOTPResponse struct{}

func (VerifyOTPResponse) Message() string {
	return "Verification successful."
}

type ResendOTPRequest struct {
	FlowToken string `json:"flow_token"`
}

type ResendOTPResponse struct {
	Sent bool `json:"sent"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	TOTPRequired bool   `json:"totp_required,omitempty"`
	FlowToken    string `json:"flow_token,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
}

type LoginTOTPRequest struct {
	FlowToken string `json:"flow_token"`
	Code      string `json:"code"`
}

type LoginTOTPResponse struct {
	AccessToken string `json:"access_token"`
}

type SocialLoginRequest struct {
	Code string `json:"code"`
}

type SocialLoginResponse struct {
	AccessToken string `json:"access_token"`
	NewAccount  bool   `json:"new_account,omitempty"`
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct {
	FlowToken string `json:"flow_token"`
}

func (PasswordForgotResponse) Message() string {
	return "Enter the code we emailed you to continue the reset."
}

type SetNewPasswordRequest struct {
	FlowToken       string `json:"flow_token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type SetNewPasswordResponse struct{}

func (SetNewPasswordResponse) Message() string {
	return "Password updated. You can sign in with it now."
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

type TOTPConfirmRequest struct {
	Code string `json:"code"`
}

type UserItem struct {
	ID           int64  `json:"id,string"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	IsActive     bool   `json:"is_active"`
	IsBlocked    bool   `json:"is_blocked"`
	IsStaff      bool   `json:"is_staff"`
}

type UserListResponse struct {
	Users []UserItem     `json:"users"`
	meta  map[string]any `json:"-"`
}

func (r UserListResponse) Meta() map[string]any { return r.meta }

type UserBlockToggleResponse struct {
	UserID    int64 `json:"user_id,string"`
	IsBlocked bool  `json:"is_blocked"`
}
