package entities

// RegisterInput represents input for user registration
type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required,min=2,max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=20"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginInput carries a Google-issued ID token
type GoogleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

// SupabaseLoginInput carries a Supabase-issued access token
type SupabaseLoginInput struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// OtpPurpose selects which recovery token a completed OTP exchange yields.
type OtpPurpose string

const (
	OtpPurposeResetPassword OtpPurpose = "reset_password"
	OtpPurposeVerifyEmail   OtpPurpose = "verify_email"
)

// SendOtpInput represents input for the send-otp endpoint
type SendOtpInput struct {
	Email   string     `json:"email" binding:"required,email"`
	Purpose OtpPurpose `json:"purpose" binding:"omitempty,oneof=reset_password verify_email"`
}

// VerifyOtpInput represents input for the verify-otp endpoint
type VerifyOtpInput struct {
	Email   string     `json:"email" binding:"required,email"`
	Otp     string     `json:"otp" binding:"required,len=6,numeric"`
	Purpose OtpPurpose `json:"purpose" binding:"omitempty,oneof=reset_password verify_email"`
}

// ResetPasswordInput represents input for the reset-password endpoint
type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// VerifyEmailInput represents input for the verify-email endpoint
type VerifyEmailInput struct {
	Token string `json:"token" binding:"required"`
}

// AuthResponse represents a successful credential exchange
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // access token lifetime in milliseconds
	User         *User  `json:"user"`
}

// OtpResponse is the envelope for OTP and recovery endpoints
type OtpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// ExternalIdentity is an identity asserted by an external identity provider
// after its token has been verified against that provider's trust material.
type ExternalIdentity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}
