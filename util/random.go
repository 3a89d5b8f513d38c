package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/hashicorp/go-uuid"
)

const totpSecretLength = 20

// GenerateVerificationCode returns a random single-use code for email
// verification and password-reset links.
func GenerateVerificationCode() (string, error) {
	code, err := uuid.GenerateUUID()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return code, nil
}

// GenerateHexSecret returns a random TOTP secret, hex encoded for storage.
func GenerateHexSecret() (string, []byte, error) {
	buf := make([]byte, totpSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(buf), buf, nil
}
