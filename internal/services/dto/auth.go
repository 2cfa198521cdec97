package dto

// LoginRequest carries a single login field that may hold an email
// address or a phone number; the service decides which it is.
type LoginRequest struct {
	Login    string `json:"login" binding:"required" validate:"required,is-login"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// LoginResponse returns both tokens along with the user's public view.
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user"`
}

// RefreshTokenRequest exchanges a refresh token for a fresh token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" validate:"required"`
}

// LogoutRequest ends the session that holds the refresh token. The
// token is optional: logging out an already ended session is fine.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenResponse carries the rotated token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SendVerificationRequest asks for a verification email by address.
type SendVerificationRequest struct {
	Email string `json:"email" binding:"required,email" validate:"required,email"`
}

// VerifyEmailRequest confirms ownership of an address with the emailed
// token.
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required" validate:"required"`
}

// ForgotPasswordRequest starts the password reset workflow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" validate:"required,email"`
}

// ResetPasswordRequest completes the password reset workflow.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required" validate:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6" validate:"required,min=6"`
}

// ValidateTokenRequest checks an access token on behalf of another
// service.
type ValidateTokenRequest struct {
	Token string `json:"token" binding:"required" validate:"required"`
}

// ValidateTokenResponse echoes the claims of a valid access token.
type ValidateTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID uint   `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
