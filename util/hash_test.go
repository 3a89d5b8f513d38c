package util

import (
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"testing"
)

func hashPasswordMock(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}

func TestHashTable(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hash     string
		expected bool
	}{
		{"hash matches correct password", "Sup3rSecret!", hashPasswordMock("Sup3rSecret!"), true},
		{"hash does not match incorrect password", "Sup3rSecret!", hashPasswordMock("Sup3rSecret?"), false},
		{"empty hash never matches", "Sup3rSecret!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := VerifyPassword(tt.password, tt.hash)
			assert.Equal(t, tt.expected, match)
		})
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.True(t, VerifyPassword("correct horse battery", hash))
	assert.False(t, VerifyPassword("wrong horse battery", hash))
}
