package command_repository

import (
	"errors"

	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IUserCommandRepository interface {
	Create(db *gorm.DB, entity *domain.User) (*domain.User, error)
	Update(db *gorm.DB, entity *domain.User) error
	ConsumeVerificationCode(db *gorm.DB, code string) (*domain.User, error)
	SetOTPSecret(db *gorm.DB, userID uint, secretHex, authURL string) error
	ActivateOTP(db *gorm.DB, userID uint) error
	DisableOTP(db *gorm.DB, userID uint) error
	UpdatePassword(db *gorm.DB, userID uint, hash string) error
	UpdatePasswordByEmail(db *gorm.DB, email string, hash string) (*domain.User, error)
}

type UserCommandRepository struct{}

func NewUserCommandRepository() IUserCommandRepository {
	return &UserCommandRepository{}
}

func (u *UserCommandRepository) Create(db *gorm.DB, entity *domain.User) (*domain.User, error) {
	return entity, db.Create(entity).Error
}

func (u *UserCommandRepository) Update(db *gorm.DB, entity *domain.User) error {
	return db.Save(entity).Error
}

// ConsumeVerificationCode flips is_verified exactly once: the guard on the
// unverified row makes a second consumption of the same code a no-op error.
func (u *UserCommandRepository) ConsumeVerificationCode(db *gorm.DB, code string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("verification_code = ? AND is_verified = ?", code, false).First(&user).Error; err != nil {
		return nil, err
	}

	res := db.Model(&domain.User{}).
		Where("id = ? AND is_verified = ?", user.Id, false).
		Updates(map[string]interface{}{
			"is_verified":       true,
			"verification_code": "",
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.New("verification code already consumed")
	}
	return &user, nil
}

func (u *UserCommandRepository) SetOTPSecret(db *gorm.DB, userID uint, secretHex, authURL string) error {
	return db.Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"otp_secret_hex": secretHex,
			"otp_auth_url":   authURL,
			"otp_enabled":    false,
			"otp_verified":   false,
		}).Error
}

func (u *UserCommandRepository) ActivateOTP(db *gorm.DB, userID uint) error {
	return db.Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"otp_enabled":  true,
			"otp_verified": true,
		}).Error
}

// DisableOTP clears all four OTP fields in one statement.
func (u *UserCommandRepository) DisableOTP(db *gorm.DB, userID uint) error {
	return db.Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"otp_secret_hex": "",
			"otp_auth_url":   "",
			"otp_enabled":    false,
			"otp_verified":   false,
		}).Error
}

func (u *UserCommandRepository) UpdatePassword(db *gorm.DB, userID uint, hash string) error {
	return db.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("password", hash).Error
}

func (u *UserCommandRepository) UpdatePasswordByEmail(db *gorm.DB, email string, hash string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	user.Password = hash
	return &user, db.Save(&user).Error
}
