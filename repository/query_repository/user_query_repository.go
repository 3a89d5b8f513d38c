package query_repository

import (
	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

// Named projection variants replace ad-hoc field selection: callers get
// exactly the sensitive columns their check needs and nothing else.
type IUserQueryRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.User, error)
	GetPublicByID(db *gorm.DB, id uint) (*domain.User, error)
	GetForPasswordCheck(db *gorm.DB, email string) (*domain.User, error)
	GetForOTPCheck(db *gorm.DB, id uint) (*domain.User, error)
	GetByEmail(db *gorm.DB, email string) (*domain.User, error)
	GetWithAuthenticators(db *gorm.DB, id uint) (*domain.User, error)
	GetByCredentialID(db *gorm.DB, credID []byte) (*domain.User, error)
	CountByEmail(db *gorm.DB, email string) (int64, error)
}

type UserQueryRepository struct{}

func NewUserQueryRepository() IUserQueryRepository {
	return &UserQueryRepository{}
}

func (u *UserQueryRepository) GetByID(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPublicByID loads the identity columns of a verified user. Password hash,
// OTP secret and verification code stay in the store.
func (u *UserQueryRepository) GetPublicByID(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := db.Select("id", "email", "first_name", "last_name", "is_verified", "otp_enabled").
		Where("is_verified = ?", true).
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetForPasswordCheck loads what a password login needs, restricted to
// verified accounts.
func (u *UserQueryRepository) GetForPasswordCheck(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.Select("id", "email", "first_name", "password", "otp_enabled").
		Where("email = ? AND is_verified = ?", email, true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserQueryRepository) GetForOTPCheck(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := db.Select("id", "email", "otp_secret_hex", "otp_auth_url", "otp_enabled", "otp_verified").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserQueryRepository) GetByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserQueryRepository) GetWithAuthenticators(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := db.Preload("Authenticators").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserQueryRepository) GetByCredentialID(db *gorm.DB, credID []byte) (*domain.User, error) {
	var user domain.User
	err := db.Preload("Authenticators").
		Joins("JOIN user_authenticators ON users.id = user_authenticators.user_id").
		Where("user_authenticators.credential_id = ?", credID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserQueryRepository) CountByEmail(db *gorm.DB, email string) (int64, error) {
	var count int64
	err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}
