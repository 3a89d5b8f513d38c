package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasskeyNameFromUserAgent(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected string
	}{
		{
			"chrome on mac",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			"Chrome on macOS",
		},
		{
			"edge wins over chrome token",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 Edg/126.0.0.0",
			"Edge on Windows",
		},
		{
			"safari on iphone",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1",
			"Safari on iOS",
		},
		{
			"firefox on linux",
			"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
			"Firefox on Linux",
		},
		{
			"unknown agent falls back",
			"curl/8.6.0",
			"Passkey",
		},
		{
			"empty agent falls back",
			"",
			"Passkey",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PasskeyNameFromUserAgent(tt.ua))
		})
	}
}
