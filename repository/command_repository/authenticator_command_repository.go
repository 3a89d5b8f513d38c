package command_repository

import (
	"errors"
	"time"

	"passkey_auth_ms/domain"

	"github.com/go-webauthn/webauthn/webauthn"
	"gorm.io/gorm"
)

// ErrStaleSignCount reports a conditional counter update that matched no
// row: the authenticator presented a counter at or below the stored one.
var ErrStaleSignCount = errors.New("sign count did not increase")

type IAuthenticatorCommandRepository interface {
	Save(db *gorm.DB, userID uint, name string, cred *webauthn.Credential) error
	UpdateAfterLogin(db *gorm.DB, credID []byte, signCount uint32) error
	Rename(db *gorm.DB, id uint, userID uint, name string) (int64, error)
	Delete(db *gorm.DB, id uint, userID uint) (int64, error)
}

type AuthenticatorCommandRepository struct{}

func NewAuthenticatorCommandRepository() IAuthenticatorCommandRepository {
	return &AuthenticatorCommandRepository{}
}

func (a *AuthenticatorCommandRepository) Save(db *gorm.DB, userID uint, name string, cred *webauthn.Credential) error {
	deviceType := domain.DeviceTypeSingleDevice
	if cred.Flags.BackupEligible {
		deviceType = domain.DeviceTypeMultiDevice
	}
	authenticator := domain.Authenticator{
		UserID:       userID,
		CredentialID: cred.ID,
		PublicKey:    cred.PublicKey,
		SignCount:    cred.Authenticator.SignCount,
		DeviceType:   deviceType,
		BackedUp:     cred.Flags.BackupState,
		Name:         name,
	}
	return db.Create(&authenticator).Error
}

// UpdateAfterLogin persists the new counter and last-used timestamp. For a
// non-zero counter the update is conditional on sign_count < new value, so a
// concurrent replay loses the race at the store instead of in memory.
// Counterless authenticators report 0 forever and only bump last_used_at.
func (a *AuthenticatorCommandRepository) UpdateAfterLogin(db *gorm.DB, credID []byte, signCount uint32) error {
	now := time.Now()
	if signCount == 0 {
		return db.Model(&domain.Authenticator{}).
			Where("credential_id = ?", credID).
			Update("last_used_at", now).Error
	}

	res := db.Model(&domain.Authenticator{}).
		Where("credential_id = ? AND sign_count < ?", credID, signCount).
		Updates(map[string]interface{}{
			"sign_count":   signCount,
			"last_used_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleSignCount
	}
	return nil
}

// Rename and Delete filter by owner as well as row id so one user can never
// touch another user's passkey.
func (a *AuthenticatorCommandRepository) Rename(db *gorm.DB, id uint, userID uint, name string) (int64, error) {
	res := db.Model(&domain.Authenticator{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	return res.RowsAffected, res.Error
}

func (a *AuthenticatorCommandRepository) Delete(db *gorm.DB, id uint, userID uint) (int64, error) {
	res := db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Authenticator{})
	return res.RowsAffected, res.Error
}
