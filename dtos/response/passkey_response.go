package response

import "time"

// PasskeyResponse is the public projection of an authenticator row; key
// material never leaves the store layer.
type PasskeyResponse struct {
	Id         uint       `json:"id"`
	Name       string     `json:"name"`
	BackedUp   bool       `json:"backed_up"`
	CreatedAt  *time.Time `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
