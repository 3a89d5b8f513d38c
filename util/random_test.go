package util

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode()
	assert.NoError(t, err)
	assert.Len(t, code, 36)
	assert.Equal(t, byte('-'), code[8])
}

func TestGenerateVerificationCode_Uniqueness(t *testing.T) {
	c1, err := GenerateVerificationCode()
	assert.NoError(t, err)
	c2, err := GenerateVerificationCode()
	assert.NoError(t, err)
	assert.NotEqual(t, c1, c2)
}

func TestGenerateHexSecret(t *testing.T) {
	secretHex, raw, err := GenerateHexSecret()
	assert.NoError(t, err)
	assert.Len(t, raw, 20)

	decoded, err := hex.DecodeString(secretHex)
	assert.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestGenerateHexSecret_Uniqueness(t *testing.T) {
	s1, _, err := GenerateHexSecret()
	assert.NoError(t, err)
	s2, _, err := GenerateHexSecret()
	assert.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}
