package services

import (
	"bytes"
	"errors"
	"fmt"

	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/domain"
	"passkey_auth_ms/repository/command_repository"
	"passkey_auth_ms/repository/query_repository"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"gorm.io/gorm"
)

type IPasskeyService interface {
	RegisterStart(userID uint) (*protocol.CredentialCreation, error)
	RegisterFinish(userID uint, attResp []byte, name string, fallbackName string) (bool, error)
	LoginStart(userID uint) (*protocol.CredentialAssertion, error)
	LoginFinish(challenge string, asseResp []byte) (*domain.User, error)
}

type PasskeyService struct {
	wa           *webauthn.WebAuthn
	db           *gorm.DB
	userQuery    query_repository.IUserQueryRepository
	authnCommand command_repository.IAuthenticatorCommandRepository
	redis        IRedisService
}

func NewPasskeyService(
	wa *webauthn.WebAuthn,
	db *gorm.DB,
	userQuery query_repository.IUserQueryRepository,
	authnCommand command_repository.IAuthenticatorCommandRepository,
	redis IRedisService,
) IPasskeyService {
	return &PasskeyService{
		wa:           wa,
		db:           db,
		userQuery:    userQuery,
		authnCommand: authnCommand,
		redis:        redis,
	}
}

// RegisterStart issues creation options with a fresh challenge. Existing
// credentials go on the exclusion list so the same authenticator cannot be
// registered twice.
func (ps *PasskeyService) RegisterStart(userID uint) (*protocol.CredentialCreation, error) {
	user, err := ps.userQuery.GetWithAuthenticators(ps.db, userID)
	if err != nil {
		return nil, err
	}

	var exclusions []protocol.CredentialDescriptor
	for _, cred := range user.WebAuthnCredentials() {
		exclusions = append(exclusions, cred.Descriptor())
	}

	options, sessionData, err := ps.wa.BeginRegistration(user,
		webauthn.WithExclusions(exclusions),
		webauthn.WithConveyancePreference(protocol.PreferNoAttestation),
	)
	if err != nil {
		return nil, err
	}

	if err := ps.redis.StoreRegistrationSession(user.Id, sessionData); err != nil {
		return nil, err
	}

	return options, nil
}

// RegisterFinish verifies the attestation response against the pending
// session. A response that does not verify reports verified=false and
// persists nothing; only malformed input or store trouble is an error.
// The session is consumed either way.
func (ps *PasskeyService) RegisterFinish(userID uint, attResp []byte, name string, fallbackName string) (bool, error) {
	user, err := ps.userQuery.GetWithAuthenticators(ps.db, userID)
	if err != nil {
		return false, err
	}

	sessionData, err := ps.redis.GetRegistrationSession(userID)
	if err != nil {
		return false, apperrors.ErrChallengeMismatch
	}
	defer ps.redis.DeleteRegistrationSession(userID)

	parsed, err := protocol.ParseCredentialCreationResponseBody(bytes.NewReader(attResp))
	if err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	cred, err := ps.wa.CreateCredential(user, *sessionData, parsed)
	if err != nil {
		return false, nil
	}

	if name == "" {
		name = fallbackName
	}
	if err := ps.authnCommand.Save(ps.db, user.Id, name, cred); err != nil {
		return false, err
	}
	return true, nil
}

// LoginStart issues assertion options. With a known user the allow-list is
// that user's credentials; with userID zero the flow is discoverable and any
// registered credential may answer.
func (ps *PasskeyService) LoginStart(userID uint) (*protocol.CredentialAssertion, error) {
	var (
		assertion   *protocol.CredentialAssertion
		sessionData *webauthn.SessionData
		err         error
	)

	if userID == 0 {
		assertion, sessionData, err = ps.wa.BeginDiscoverableLogin(
			webauthn.WithUserVerification(protocol.VerificationPreferred),
		)
	} else {
		var user *domain.User
		user, err = ps.userQuery.GetWithAuthenticators(ps.db, userID)
		if err != nil {
			return nil, err
		}
		assertion, sessionData, err = ps.wa.BeginLogin(user,
			webauthn.WithUserVerification(protocol.VerificationPreferred),
		)
	}
	if err != nil {
		return nil, err
	}

	if err := ps.redis.StoreAuthenticationSession(sessionData.Challenge, sessionData); err != nil {
		return nil, err
	}

	return assertion, nil
}

// LoginFinish validates the assertion against the stored session, enforces
// the monotonic counter (stale counter loses, but counterless authenticators
// reporting 0 forever are allowed through) and returns the owning user.
// Every verification failure surfaces as the same generic error so callers
// cannot reveal which credentials exist.
func (ps *PasskeyService) LoginFinish(challenge string, asseResp []byte) (*domain.User, error) {
	sessionData, err := ps.redis.GetAuthenticationSession(challenge)
	if err != nil {
		return nil, apperrors.ErrChallengeMismatch
	}
	defer ps.redis.DeleteAuthenticationSession(challenge)

	parsed, err := protocol.ParseCredentialRequestResponseBody(bytes.NewReader(asseResp))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	user, err := ps.userQuery.GetByCredentialID(ps.db, parsed.RawID)
	if err != nil {
		return nil, apperrors.ErrUnknownCredential
	}

	var cred *webauthn.Credential
	if len(sessionData.UserID) > 0 {
		cred, err = ps.wa.ValidateLogin(user, *sessionData, parsed)
	} else {
		cred, err = ps.wa.ValidateDiscoverableLogin(
			func(rawID, userHandle []byte) (webauthn.User, error) {
				return user, nil
			},
			*sessionData, parsed,
		)
	}
	if err != nil {
		return nil, apperrors.ErrUnknownCredential
	}

	if cred.Authenticator.CloneWarning {
		return nil, apperrors.ErrUnknownCredential
	}

	if err := ps.authnCommand.UpdateAfterLogin(ps.db, cred.ID, cred.Authenticator.SignCount); err != nil {
		if errors.Is(err, command_repository.ErrStaleSignCount) {
			return nil, apperrors.ErrUnknownCredential
		}
		return nil, err
	}

	return user, nil
}
