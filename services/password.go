package services

import (
	"errors"
	"strings"
	"time"

	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/repository/command_repository"
	"passkey_auth_ms/repository/query_repository"
	"passkey_auth_ms/util"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// resetTokenTTL bounds how long a reset link stays usable.
const resetTokenTTL = time.Hour

type IPasswordService interface {
	RequestReset(email string) error
	CompleteReset(code string, newPassword string) error
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

type PasswordService struct {
	db           *gorm.DB
	userQuery    query_repository.IUserQueryRepository
	userCommand  command_repository.IUserCommandRepository
	resetQuery   query_repository.IPasswordResetQueryRepository
	resetCommand command_repository.IPasswordResetCommandRepository
	mailer       IMailerService
}

func NewPasswordService(
	db *gorm.DB,
	userQuery query_repository.IUserQueryRepository,
	userCommand command_repository.IUserCommandRepository,
	resetQuery query_repository.IPasswordResetQueryRepository,
	resetCommand command_repository.IPasswordResetCommandRepository,
	mailer IMailerService,
) IPasswordService {
	return &PasswordService{
		db:           db,
		userQuery:    userQuery,
		userCommand:  userCommand,
		resetQuery:   resetQuery,
		resetCommand: resetCommand,
		mailer:       mailer,
	}
}

// RequestReset succeeds silently for unknown emails: no reset row, no mail,
// and the response gives away nothing about whether the account exists.
func (p *PasswordService) RequestReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := p.userQuery.GetByEmail(p.db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	code, err := util.GenerateVerificationCode()
	if err != nil {
		return err
	}

	if _, err := p.resetCommand.Create(p.db, email, code); err != nil {
		return err
	}

	return p.mailer.SendResetPasswordEmail(&request.ResetPasswordEmailEvent{
		Email: email,
		Code:  code,
	})
}

// CompleteReset consumes an unverified, unexpired code: the new hash is
// persisted, the request row flips verified so the link cannot be replayed,
// and the user gets a password-changed notification.
func (p *PasswordService) CompleteReset(code string, newPassword string) error {
	reset, err := p.resetQuery.GetUnverifiedByCode(p.db, code)
	if err != nil {
		return apperrors.ErrInvalidOrExpiredCode
	}
	if reset.CreatedAt != nil && time.Since(*reset.CreatedAt) > resetTokenTTL {
		return apperrors.ErrInvalidOrExpiredCode
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user, err := p.userCommand.UpdatePasswordByEmail(p.db, reset.Email, hash)
	if err != nil {
		return err
	}

	if err := p.resetCommand.MarkVerified(p.db, reset.ID); err != nil {
		return err
	}

	if err := p.mailer.SendPasswordChangedEmail(&request.PasswordChangedEmailEvent{
		Email:     user.Email,
		FirstName: user.FirstName,
	}); err != nil {
		log.Error("failed to send password changed notification: ", err)
	}
	return nil
}

func (p *PasswordService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := p.userQuery.GetByID(p.db, userID)
	if err != nil {
		return err
	}

	if user.Password == "" || !util.VerifyPassword(currentPassword, user.Password) {
		return apperrors.ErrBadCredentials
	}
	if newPassword == currentPassword {
		return apperrors.ErrSamePassword
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return p.userCommand.UpdatePassword(p.db, userID, hash)
}
