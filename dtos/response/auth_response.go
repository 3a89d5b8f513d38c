package response

const (
	STATUS_OK           = "ok"
	STATUS_2FA_REQUIRED = "2fa_required"
	STATUS_VERIFY_EMAIL = "verify_email"
)

type SignupResponse struct {
	UserId uint   `json:"user_id"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type LoginResponse struct {
	UserId uint   `json:"user_id"`
	Status string `json:"status"`
}

type VerifiedResponse struct {
	Verified bool `json:"verified"`
}

// ProfileResponse carries the identity columns only; credential and OTP
// secrets never reach this projection.
type ProfileResponse struct {
	Id         uint   `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	OtpEnabled bool   `json:"otp_enabled"`
}
