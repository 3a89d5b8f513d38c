package command_repository

import (
	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IPasswordResetCommandRepository interface {
	Create(db *gorm.DB, email string, code string) (*domain.PasswordResetRequest, error)
	MarkVerified(db *gorm.DB, id uint) error
}

type PasswordResetCommandRepository struct{}

func NewPasswordResetCommandRepository() IPasswordResetCommandRepository {
	return &PasswordResetCommandRepository{}
}

func (p *PasswordResetCommandRepository) Create(db *gorm.DB, email string, code string) (*domain.PasswordResetRequest, error) {
	reset := domain.PasswordResetRequest{
		Email:            email,
		VerificationCode: code,
	}
	return &reset, db.Create(&reset).Error
}

func (p *PasswordResetCommandRepository) MarkVerified(db *gorm.DB, id uint) error {
	return db.Model(&domain.PasswordResetRequest{}).
		Where("id = ?", id).
		Update("is_verified", true).Error
}
