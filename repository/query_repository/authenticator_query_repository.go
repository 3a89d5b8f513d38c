package query_repository

import (
	"passkey_auth_ms/domain"

	"gorm.io/gorm"
)

type IAuthenticatorQueryRepository interface {
	GetByCredentialID(db *gorm.DB, credID []byte) (*domain.Authenticator, error)
	ListByUserID(db *gorm.DB, userID uint) ([]domain.Authenticator, error)
}

type AuthenticatorQueryRepository struct{}

func NewAuthenticatorQueryRepository() IAuthenticatorQueryRepository {
	return &AuthenticatorQueryRepository{}
}

func (a *AuthenticatorQueryRepository) GetByCredentialID(db *gorm.DB, credID []byte) (*domain.Authenticator, error) {
	var authenticator domain.Authenticator
	err := db.Where("credential_id = ?", credID).First(&authenticator).Error
	if err != nil {
		return nil, err
	}
	return &authenticator, nil
}

// ListByUserID returns the rows for the passkey management screen; key
// material columns are not selected.
func (a *AuthenticatorQueryRepository) ListByUserID(db *gorm.DB, userID uint) ([]domain.Authenticator, error) {
	var authenticators []domain.Authenticator
	err := db.Select("id", "user_id", "name", "backed_up", "created_at", "last_used_at").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&authenticators).Error
	if err != nil {
		return nil, err
	}
	return authenticators, nil
}
