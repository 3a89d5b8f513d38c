package request

type VerifyTwoFaRequest struct {
	Token string `json:"token" validate:"required,len=6,numeric"`
}
