package services

import (
	"fmt"

	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/repository/command_repository"
	"passkey_auth_ms/repository/query_repository"

	"gorm.io/gorm"
)

// IPasskeyManagementService covers the credential lifecycle outside the
// ceremonies: listing, renaming and revoking. Every mutation is scoped to
// the owning user.
type IPasskeyManagementService interface {
	List(userID uint) ([]response.PasskeyResponse, error)
	Rename(id uint, userID uint, name string) error
	Delete(id uint, userID uint) error
}

type PasskeyManagementService struct {
	db      *gorm.DB
	query   query_repository.IAuthenticatorQueryRepository
	command command_repository.IAuthenticatorCommandRepository
}

func NewPasskeyManagementService(db *gorm.DB, query query_repository.IAuthenticatorQueryRepository, command command_repository.IAuthenticatorCommandRepository) IPasskeyManagementService {
	return &PasskeyManagementService{db: db, query: query, command: command}
}

func (pm *PasskeyManagementService) List(userID uint) ([]response.PasskeyResponse, error) {
	authenticators, err := pm.query.ListByUserID(pm.db, userID)
	if err != nil {
		return nil, err
	}

	passkeys := make([]response.PasskeyResponse, 0, len(authenticators))
	for _, a := range authenticators {
		passkeys = append(passkeys, response.PasskeyResponse{
			Id:         a.ID,
			Name:       a.Name,
			BackedUp:   a.BackedUp,
			CreatedAt:  a.CreatedAt,
			LastUsedAt: a.LastUsedAt,
		})
	}
	return passkeys, nil
}

func (pm *PasskeyManagementService) Rename(id uint, userID uint, name string) error {
	affected, err := pm.command.Rename(pm.db, id, userID, name)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: no such passkey", apperrors.ErrValidation)
	}
	return nil
}

func (pm *PasskeyManagementService) Delete(id uint, userID uint) error {
	affected, err := pm.command.Delete(pm.db, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: no such passkey", apperrors.ErrValidation)
	}
	return nil
}
