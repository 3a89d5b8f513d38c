package services

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"time"

	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/repository/command_repository"
	"passkey_auth_ms/repository/query_repository"
	"passkey_auth_ms/util"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type ITwoFactorService interface {
	EnableBegin(userID uint) (*response.TwoFASetupResponse, error)
	Verify(userID uint, token string) error
	ValidateLogin(userID uint, token string) error
	Disable(userID uint) error
}

type TwoFactorService struct {
	db      *gorm.DB
	query   query_repository.IUserQueryRepository
	command command_repository.IUserCommandRepository
	issuer  string
}

func NewTwoFactorService(db *gorm.DB, query query_repository.IUserQueryRepository, command command_repository.IUserCommandRepository, issuer string) ITwoFactorService {
	return &TwoFactorService{db: db, query: query, command: command, issuer: issuer}
}

// EnableBegin provisions a fresh secret and its otpauth URI. The secret is
// not active until Verify succeeds, and re-running this before then simply
// rotates it.
func (t *TwoFactorService) EnableBegin(userID uint) (*response.TwoFASetupResponse, error) {
	user, err := t.query.GetForOTPCheck(t.db, userID)
	if err != nil {
		return nil, err
	}
	if user.OtpEnabled {
		return nil, fmt.Errorf("%w: two-factor authentication already enabled", apperrors.ErrValidation)
	}

	secretHex, raw, err := util.GenerateHexSecret()
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: user.Email,
		Secret:      raw,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := t.command.SetOTPSecret(t.db, userID, secretHex, key.URL()); err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	return &response.TwoFASetupResponse{
		OtpAuthUrl: key.URL(),
		QRCode:     png,
	}, nil
}

// Verify is the one-time activation path: a matching code flips the account
// to otp_enabled + otp_verified.
func (t *TwoFactorService) Verify(userID uint, token string) error {
	user, err := t.query.GetForOTPCheck(t.db, userID)
	if err != nil {
		return err
	}
	if user.OtpSecretHex == "" {
		return fmt.Errorf("%w: two-factor authentication has not been set up", apperrors.ErrValidation)
	}
	if user.OtpVerified {
		return fmt.Errorf("%w: two-factor authentication already verified", apperrors.ErrValidation)
	}

	ok, err := ValidateTOTPCode(token, user.OtpSecretHex, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidCode
	}

	return t.command.ActivateOTP(t.db, userID)
}

// ValidateLogin runs the same code check at every login without touching the
// activation flags.
func (t *TwoFactorService) ValidateLogin(userID uint, token string) error {
	user, err := t.query.GetForOTPCheck(t.db, userID)
	if err != nil {
		return err
	}
	if !user.OtpEnabled || user.OtpSecretHex == "" {
		return fmt.Errorf("%w: two-factor authentication is not enabled", apperrors.ErrValidation)
	}

	ok, err := ValidateTOTPCode(token, user.OtpSecretHex, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidCode
	}
	return nil
}

func (t *TwoFactorService) Disable(userID uint) error {
	user, err := t.query.GetForOTPCheck(t.db, userID)
	if err != nil {
		return err
	}
	if !user.OtpEnabled {
		return fmt.Errorf("%w: two-factor authentication is not enabled", apperrors.ErrValidation)
	}
	return t.command.DisableOTP(t.db, userID)
}

// ValidateTOTPCode checks a 6-digit SHA1/30s code against the hex-stored
// secret, tolerating one period of clock skew in each direction.
func ValidateTOTPCode(token, secretHex string, at time.Time) (bool, error) {
	raw, err := hex.DecodeString(secretHex)
	if err != nil {
		return false, fmt.Errorf("malformed otp secret: %w", err)
	}
	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)

	return totp.ValidateCustom(token, secret, at, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}
