package domain

import "time"

const (
	DeviceTypeSingleDevice = "single-device"
	DeviceTypeMultiDevice  = "multi-device"
)

// Authenticator is one registered passkey credential. CredentialID is
// globally unique across all users.
type Authenticator struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"` // foreign key
	CredentialID []byte     `gorm:"not null;unique" json:"credential_id"`
	PublicKey    []byte     `gorm:"not null" json:"public_key"`
	SignCount    uint32     `gorm:"not null" json:"sign_count"`
	DeviceType   string     `gorm:"size:32;not null" json:"device_type"`
	BackedUp     bool       `gorm:"not null;default:false" json:"backed_up"`
	Name         string     `gorm:"size:100" json:"name"`
	CreatedAt    *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"default:null" json:"updated_at"`
	LastUsedAt   *time.Time `gorm:"default:null" json:"last_used_at"`
}

func (Authenticator) TableName() string {
	return "user_authenticators"
}
