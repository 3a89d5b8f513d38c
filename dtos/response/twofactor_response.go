package response

type TwoFASetupResponse struct {
	OtpAuthUrl string `json:"otp_auth_url"`
	QRCode     []byte `json:"qr_code"`
}
