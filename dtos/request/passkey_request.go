package request

import "encoding/json"

// AttResp and AsseResp carry the browser's attestation/assertion response
// verbatim; field names match what WebAuthn clients send.
type FinishPasskeyRegistrationRequest struct {
	AttResp json.RawMessage `json:"attResp" validate:"required"`
	Name    string          `json:"name" validate:"max=100"`
}

type FinishPasskeyAuthenticationRequest struct {
	AsseResp  json.RawMessage `json:"asseResp" validate:"required"`
	Challenge string          `json:"challenge" validate:"required"`
}

type RenamePasskeyRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
