package services

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"testing"

	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/domain"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (f *fakeUserQuery) GetByCredentialID(db *gorm.DB, credID []byte) (*domain.User, error) {
	if f.byID != nil {
		for _, a := range f.byID.Authenticators {
			if bytes.Equal(a.CredentialID, credID) {
				return f.byID, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// fixtureAuthData assembles authenticator data for the test RP, optionally
// carrying attested credential data with an ES256 COSE key.
func fixtureAuthData(t *testing.T, credID []byte, attested bool) []byte {
	t.Helper()

	rpIDHash := sha256.Sum256([]byte("localhost"))
	flags := byte(0x05) // UP | UV
	if attested {
		flags |= 0x40
	}

	buf := bytes.NewBuffer(rpIDHash[:])
	buf.WriteByte(flags)

	var counter [4]byte
	binary.BigEndian.PutUint32(counter[:], 1)
	buf.Write(counter[:])

	if attested {
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		assert.NoError(t, err)
		cose, err := ctap2Marshal(map[int]interface{}{
			1:  2,  // kty EC2
			3:  -7, // alg ES256
			-1: 1,  // crv P-256
			-2: key.PublicKey.X.FillBytes(make([]byte, 32)),
			-3: key.PublicKey.Y.FillBytes(make([]byte, 32)),
		})
		assert.NoError(t, err)

		buf.Write(make([]byte, 16)) // AAGUID

		var idLen [2]byte
		binary.BigEndian.PutUint16(idLen[:], uint16(len(credID)))
		buf.Write(idLen[:])
		buf.Write(credID)
		buf.Write(cose)
	}

	return buf.Bytes()
}

func ctap2Marshal(v interface{}) ([]byte, error) {
	mode, err := cbor.CTAP2EncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return mode.Marshal(v)
}

func fixtureClientData(t *testing.T, ceremony, challenge string) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]string{
		"type":      ceremony,
		"challenge": challenge,
		"origin":    "http://localhost:3000",
	})
	assert.NoError(t, err)
	return data
}

// fixtureAttestationResponse builds a wire-complete "none" attestation whose
// client data carries the given challenge.
func fixtureAttestationResponse(t *testing.T, credID []byte, challenge string) []byte {
	t.Helper()

	attObj, err := ctap2Marshal(map[string]interface{}{
		"fmt":      "none",
		"attStmt":  map[string]interface{}{},
		"authData": fixtureAuthData(t, credID, true),
	})
	assert.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"id":    base64.RawURLEncoding.EncodeToString(credID),
		"rawId": base64.RawURLEncoding.EncodeToString(credID),
		"type":  "public-key",
		"response": map[string]string{
			"clientDataJSON":    base64.RawURLEncoding.EncodeToString(fixtureClientData(t, "webauthn.create", challenge)),
			"attestationObject": base64.RawURLEncoding.EncodeToString(attObj),
		},
	})
	assert.NoError(t, err)
	return body
}

func fixtureAssertionResponse(t *testing.T, credID []byte, challenge string) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"id":    base64.RawURLEncoding.EncodeToString(credID),
		"rawId": base64.RawURLEncoding.EncodeToString(credID),
		"type":  "public-key",
		"response": map[string]string{
			"clientDataJSON":    base64.RawURLEncoding.EncodeToString(fixtureClientData(t, "webauthn.get", challenge)),
			"authenticatorData": base64.RawURLEncoding.EncodeToString(fixtureAuthData(t, credID, false)),
			"signature":         base64.RawURLEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, 16)),
		},
	})
	assert.NoError(t, err)
	return body
}

func TestRegisterFinish_FailedVerification(t *testing.T) {
	user := &domain.User{Id: 1, Email: "test@example.com"}
	store := newFakeCeremonyStore()
	store.registration[1] = &webauthn.SessionData{Challenge: "expected-challenge", UserID: user.WebAuthnID()}
	command := &fakeAuthenticatorCommand{}
	svc := NewPasskeyService(newTestWebAuthn(t), nil, &fakeUserQuery{byID: user}, command, store)

	// Well-formed attestation answering a different challenge than the one
	// parked in the session
	attResp := fixtureAttestationResponse(t, []byte("cred-id-1"), "some-other-challenge")

	verified, err := svc.RegisterFinish(1, attResp, "", "Passkey")
	assert.NoError(t, err)
	assert.False(t, verified)

	// Nothing persisted, session consumed
	assert.Zero(t, command.saves)
	assert.NotContains(t, store.registration, uint(1))
}

func TestLoginFinish_FailedVerification(t *testing.T) {
	credID := []byte("cred-id-1")
	user := &domain.User{
		Id:    1,
		Email: "test@example.com",
		Authenticators: []domain.Authenticator{
			{ID: 10, UserID: 1, CredentialID: credID, PublicKey: []byte{0x01}},
		},
	}
	store := newFakeCeremonyStore()
	store.authentication["expected-challenge"] = &webauthn.SessionData{
		Challenge: "expected-challenge",
		UserID:    user.WebAuthnID(),
	}
	command := &fakeAuthenticatorCommand{}
	svc := NewPasskeyService(newTestWebAuthn(t), nil, &fakeUserQuery{byID: user}, command, store)

	asseResp := fixtureAssertionResponse(t, credID, "some-other-challenge")

	_, err := svc.LoginFinish("expected-challenge", asseResp)

	// Same generic error as an unknown credential, and no counter write
	assert.ErrorIs(t, err, apperrors.ErrUnknownCredential)
	assert.Zero(t, command.updates)
	assert.NotContains(t, store.authentication, "expected-challenge")
}
