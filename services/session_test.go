package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"passkey_auth_ms/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// runAuthGate runs Authenticate inside a real fiber handler and captures what
// it resolved for the given request cookies.
func runAuthGate(t *testing.T, session ISessionService, requireTwoFactor bool, cookies map[string]string) (uint, error) {
	t.Helper()

	var gotID uint
	var gotErr error

	app := fiber.New()
	app.Get("/protected", func(c *fiber.Ctx) error {
		gotID, gotErr = session.Authenticate(c, requireTwoFactor)
		return nil
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	return gotID, gotErr
}

func newTestSessionService() (ISessionService, IJWTService) {
	jwt := newTestJWTService()
	return NewSessionService(jwt, time.Hour, "localhost", false), jwt
}

func TestAuthenticate_NoCookie(t *testing.T) {
	session, _ := newTestSessionService()

	_, err := runAuthGate(t, session, false, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticate_GarbageIdentity(t *testing.T) {
	session, _ := newTestSessionService()

	_, err := runAuthGate(t, session, false, map[string]string{
		IdentityCookieName: "not.a.jwt",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticate_IdentityOnly(t *testing.T) {
	session, jwt := newTestSessionService()

	identity, err := jwt.GenerateToken(42, time.Hour)
	assert.NoError(t, err)

	userID, err := runAuthGate(t, session, false, map[string]string{
		IdentityCookieName: identity,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestAuthenticate_RequiresElevation(t *testing.T) {
	session, jwt := newTestSessionService()

	identity, err := jwt.GenerateToken(42, time.Hour)
	assert.NoError(t, err)

	// Identity alone is not enough for routes behind the two-factor gate
	_, err = runAuthGate(t, session, true, map[string]string{
		IdentityCookieName: identity,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotElevated)

	elevation, err := jwt.GenerateElevationToken(42, true, time.Hour)
	assert.NoError(t, err)

	userID, err := runAuthGate(t, session, true, map[string]string{
		IdentityCookieName:  identity,
		ElevationCookieName: elevation,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestAuthenticate_ElevationBoundToUser(t *testing.T) {
	session, jwt := newTestSessionService()

	identity, err := jwt.GenerateToken(42, time.Hour)
	assert.NoError(t, err)

	// An elevation cookie minted for another account does not elevate
	elevation, err := jwt.GenerateElevationToken(7, true, time.Hour)
	assert.NoError(t, err)

	_, err = runAuthGate(t, session, true, map[string]string{
		IdentityCookieName:  identity,
		ElevationCookieName: elevation,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotElevated)
}

func TestAuthenticate_UnelevatedClaim(t *testing.T) {
	session, jwt := newTestSessionService()

	identity, err := jwt.GenerateToken(42, time.Hour)
	assert.NoError(t, err)

	// The cookie a 2FA user gets at login carries elevated=false
	elevation, err := jwt.GenerateElevationToken(42, false, time.Hour)
	assert.NoError(t, err)

	_, err = runAuthGate(t, session, true, map[string]string{
		IdentityCookieName:  identity,
		ElevationCookieName: elevation,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotElevated)
}
