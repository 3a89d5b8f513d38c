package services

import (
	"errors"
	"fmt"
	"strings"

	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/repository/command_repository"
	"passkey_auth_ms/repository/query_repository"
	"passkey_auth_ms/util"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type IAuthService interface {
	Signup(req *request.SignupRequest) (*response.SignupResponse, error)
	VerifyEmail(code string) (*domain.User, error)
	Login(req *request.LoginRequest) (*domain.User, error)
	Profile(userID uint) (*response.ProfileResponse, error)
}

type AuthService struct {
	db      *gorm.DB
	query   query_repository.IUserQueryRepository
	command command_repository.IUserCommandRepository
	mailer  IMailerService
}

func NewAuthService(db *gorm.DB, query query_repository.IUserQueryRepository, command command_repository.IUserCommandRepository, mailer IMailerService) IAuthService {
	return &AuthService{db: db, query: query, command: command, mailer: mailer}
}

func (a *AuthService) Signup(req *request.SignupRequest) (*response.SignupResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	count, err := a.query.CountByEmail(a.db, email)
	if err != nil {
		return nil, err
	}
	if count != 0 {
		return nil, fmt.Errorf("%w: a user with this email already exists", apperrors.ErrValidation)
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	code, err := util.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	user, err := a.command.Create(a.db, &domain.User{
		Email:            email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Password:         hash,
		VerificationCode: code,
	})
	if err != nil {
		return nil, err
	}

	if err := a.mailer.SendVerificationEmail(&request.VerificationEmailEvent{
		Email:     user.Email,
		FirstName: user.FirstName,
		Code:      code,
	}); err != nil {
		return nil, err
	}

	return &response.SignupResponse{
		UserId: user.Id,
		Email:  user.Email,
		Status: response.STATUS_VERIFY_EMAIL,
	}, nil
}

// VerifyEmail consumes the single-use code and flips the account to
// verified. Replays and unknown codes land on the same error.
func (a *AuthService) VerifyEmail(code string) (*domain.User, error) {
	user, err := a.command.ConsumeVerificationCode(a.db, code)
	if err != nil {
		return nil, apperrors.ErrInvalidOrExpiredCode
	}
	return user, nil
}

// Login checks email+password against verified accounts. Unknown email,
// unverified account, passkey-only account and wrong password all fail with
// the same BadCredentials.
func (a *AuthService) Login(req *request.LoginRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.query.GetForPasswordCheck(a.db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBadCredentials
		}
		log.Error("failed to load user for password check: ", err)
		return nil, err
	}

	if user.Password == "" || !util.VerifyPassword(req.Password, user.Password) {
		return nil, apperrors.ErrBadCredentials
	}

	return user, nil
}

// Profile loads the public projection of the signed-in account. A session
// pointing at a missing or unverified account fails as unauthenticated.
func (a *AuthService) Profile(userID uint) (*response.ProfileResponse, error) {
	user, err := a.query.GetPublicByID(a.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}

	return &response.ProfileResponse{
		Id:         user.Id,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		OtpEnabled: user.OtpEnabled,
	}, nil
}
