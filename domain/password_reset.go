package domain

import "time"

// PasswordResetRequest is a single-use reset token. IsVerified flips true
// exactly once when the code is consumed.
type PasswordResetRequest struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Email            string     `gorm:"size:100;not null;index" json:"email"`
	VerificationCode string     `gorm:"size:100;not null;uniqueIndex" json:"-"`
	IsVerified       bool       `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt        *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (PasswordResetRequest) TableName() string {
	return "password_reset_requests"
}
