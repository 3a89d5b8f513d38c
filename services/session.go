package services

import (
	"time"

	"passkey_auth_ms/apperrors"

	"github.com/gofiber/fiber/v2"
)

const (
	IdentityCookieName  = "access_token"
	ElevationCookieName = "2fa_token"
)

// ISessionService decides what session cookies a verified identity gets and
// is the single gate every protected route goes through.
type ISessionService interface {
	IssueSession(c *fiber.Ctx, userID uint, otpEnabled bool) error
	Elevate(c *fiber.Ctx, userID uint) error
	ClearSession(c *fiber.Ctx)
	Authenticate(c *fiber.Ctx, requireTwoFactor bool) (uint, error)
}

type SessionService struct {
	jwt    IJWTService
	ttl    time.Duration
	domain string
	secure bool
}

func NewSessionService(jwt IJWTService, ttl time.Duration, domain string, secure bool) ISessionService {
	return &SessionService{jwt: jwt, ttl: ttl, domain: domain, secure: secure}
}

func (s *SessionService) cookie(name, value string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   maxAge,
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// IssueSession sets the identity cookie and the elevation cookie. A user
// with 2FA enabled starts un-elevated and has to pass the TOTP step before
// protected routes open up; everyone else is elevated immediately.
func (s *SessionService) IssueSession(c *fiber.Ctx, userID uint, otpEnabled bool) error {
	identity, err := s.jwt.GenerateToken(userID, s.ttl)
	if err != nil {
		return err
	}
	elevation, err := s.jwt.GenerateElevationToken(userID, !otpEnabled, s.ttl)
	if err != nil {
		return err
	}

	c.Cookie(s.cookie(IdentityCookieName, identity, int(s.ttl.Seconds())))
	c.Cookie(s.cookie(ElevationCookieName, elevation, int(s.ttl.Seconds())))
	return nil
}

func (s *SessionService) Elevate(c *fiber.Ctx, userID uint) error {
	elevation, err := s.jwt.GenerateElevationToken(userID, true, s.ttl)
	if err != nil {
		return err
	}
	c.Cookie(s.cookie(ElevationCookieName, elevation, int(s.ttl.Seconds())))
	return nil
}

// ClearSession expires the identity cookie immediately. The elevation cookie
// is left alone: it means nothing without a valid identity.
func (s *SessionService) ClearSession(c *fiber.Ctx) {
	cookie := s.cookie(IdentityCookieName, "", -1)
	cookie.Expires = time.Unix(0, 0)
	c.Cookie(cookie)
}

// Authenticate reads the request cookies and resolves them to a user id.
// Absent or invalid identity fails Unauthenticated; when two-factor is
// required, a missing elevation or one bound to a different user fails
// NotElevated. The elevation cookie is never consulted on its own.
func (s *SessionService) Authenticate(c *fiber.Ctx, requireTwoFactor bool) (uint, error) {
	identity := c.Cookies(IdentityCookieName)
	if identity == "" {
		return 0, apperrors.ErrUnauthenticated
	}

	token, err := s.jwt.ParseJWT(identity)
	if err != nil {
		return 0, apperrors.ErrUnauthenticated
	}
	claims, err := s.jwt.GetClaims(token)
	if err != nil {
		return 0, apperrors.ErrUnauthenticated
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}
	userID := uint(sub)

	if requireTwoFactor && !s.isElevated(c, userID) {
		return 0, apperrors.ErrNotElevated
	}

	return userID, nil
}

func (s *SessionService) isElevated(c *fiber.Ctx, userID uint) bool {
	elevation := c.Cookies(ElevationCookieName)
	if elevation == "" {
		return false
	}

	token, err := s.jwt.ParseJWT(elevation)
	if err != nil {
		return false
	}
	claims, err := s.jwt.GetClaims(token)
	if err != nil {
		return false
	}
	sub, ok := claims["sub"].(float64)
	if !ok || uint(sub) != userID {
		return false
	}
	elevated, ok := claims["elevated"].(bool)
	return ok && elevated
}
