package payload

type SignupRequest struct {
	Username       string `json:"username"        validate:"required,email"`
	Password       string `json:"password"        validate:"required"`
	PasswordRepeat string `json:"password_repeat" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type GenerateOTPRequest struct {
	Username string `json:"username" validate:"required"`
}

type VerifyAndUpdateRequest struct {
	Username    string `json:"username"     validate:"required"`
	OTP         string `json:"otp"          validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}
