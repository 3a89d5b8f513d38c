package query_repository

import (
	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IPasswordResetQueryRepository interface {
	GetUnverifiedByCode(db *gorm.DB, code string) (*domain.PasswordResetRequest, error)
}

type PasswordResetQueryRepository struct{}

func NewPasswordResetQueryRepository() IPasswordResetQueryRepository {
	return &PasswordResetQueryRepository{}
}

func (p *PasswordResetQueryRepository) GetUnverifiedByCode(db *gorm.DB, code string) (*domain.PasswordResetRequest, error) {
	var reset domain.PasswordResetRequest
	err := db.Where("verification_code = ? AND is_verified = ?", code, false).First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}
