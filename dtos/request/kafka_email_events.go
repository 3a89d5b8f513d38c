package request

// Events published for the notification service; topic name matches the
// struct name.
type VerificationEmailEvent struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Code      string `json:"code"`
}

type ResetPasswordEmailEvent struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type PasswordChangedEmailEvent struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}
