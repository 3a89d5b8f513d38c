package domain

import (
	"strconv"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

type User struct {
	Id               uint            `gorm:"primaryKey" json:"id"`
	CreatedAt        *time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        *time.Time      `gorm:"default:null" json:"updated_at"`
	Email            string          `gorm:"size:100;not null;uniqueIndex" json:"email"`
	FirstName        string          `gorm:"size:100" json:"first_name"`
	LastName         string          `gorm:"size:100" json:"last_name"`
	Password         string          `gorm:"size:100" json:"-"` // bcrypt hash, empty for passkey-only accounts
	IsVerified       bool            `gorm:"not null;default:false" json:"is_verified"`
	VerificationCode string          `gorm:"size:100" json:"-"`
	OtpSecretHex     string          `gorm:"size:100" json:"-"`
	OtpAuthUrl       string          `gorm:"size:255" json:"-"`
	OtpEnabled       bool            `gorm:"not null;default:false" json:"otp_enabled"`
	OtpVerified      bool            `gorm:"not null;default:false" json:"otp_verified"`
	Authenticators   []Authenticator `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_authenticators"`
}

func (u User) WebAuthnID() []byte {
	return []byte(strconv.Itoa(int(u.Id)))
}
func (u User) WebAuthnName() string {
	return u.Email
}
func (u User) WebAuthnDisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}
func (u User) WebAuthnCredentials() []webauthn.Credential {
	var creds []webauthn.Credential
	for _, a := range u.Authenticators {
		creds = append(creds, webauthn.Credential{
			ID:        a.CredentialID,
			PublicKey: a.PublicKey,
			Flags: webauthn.CredentialFlags{
				BackupEligible: a.DeviceType == DeviceTypeMultiDevice,
				BackupState:    a.BackedUp,
			},
			Authenticator: webauthn.Authenticator{
				SignCount: a.SignCount,
			},
		})
	}
	return creds
}
