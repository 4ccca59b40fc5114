// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/app/services"
	"github.com/amirphl/vendor-campaigns/config"
	"github.com/amirphl/vendor-campaigns/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// SessionLocalsKey is the fiber locals key holding the decoded *services.Session
const SessionLocalsKey = "session"

// SessionMiddleware loads the signed session cookie and gates vendor and admin routes
type SessionMiddleware struct {
	sessionService services.SessionService
	cookieName     string
	secure         bool
	sameSite       string
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessionService services.SessionService, cfg config.SessionConfig) *SessionMiddleware {
	name := cfg.CookieName
	if name == "" {
		name = utils.SessionCookieName
	}
	return &SessionMiddleware{
		sessionService: sessionService,
		cookieName:     name,
		secure:         cfg.Secure,
		sameSite:       sameSiteMode(cfg.SameSite),
	}
}

// Load decodes the session cookie into the request locals. A missing, tampered or expired
// cookie yields an empty session.
func (m *SessionMiddleware) Load() fiber.Handler {
	return func(c fiber.Ctx) error {
		session := &services.Session{}
		if raw := c.Cookies(m.cookieName); raw != "" {
			decoded, err := m.sessionService.Decode(raw)
			switch {
			case err == nil:
				session = decoded
			case errors.Is(err, services.ErrSessionExpired):
				// stale cookie, start over
			default:
				log.Printf(`{"level":"warn","event":"session_rejected","request_id":"%s","error":"%v"}`, requestid.FromContext(c), err)
			}
		}
		c.Locals(SessionLocalsKey, session)
		return c.Next()
	}
}

// RequireLogin rejects requests without an authenticated vendor session
func (m *SessionMiddleware) RequireLogin() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !SessionFrom(c).IsLoggedIn() {
			authRejections.WithLabelValues("login").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Login required",
				Error:   dto.ErrorDetail{Code: "AUTH_REQUIRED"},
			})
		}
		return c.Next()
	}
}

// RequireAdmin checks login first, then the admin flag
func (m *SessionMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		session := SessionFrom(c)
		if !session.IsLoggedIn() {
			authRejections.WithLabelValues("login").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Login required",
				Error:   dto.ErrorDetail{Code: "AUTH_REQUIRED"},
			})
		}
		if !session.IsAdmin {
			authRejections.WithLabelValues("admin").Inc()
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Administrator access required",
				Error:   dto.ErrorDetail{Code: "FORBIDDEN"},
			})
		}
		return c.Next()
	}
}

// Save replaces the session cookie with session
func (m *SessionMiddleware) Save(c fiber.Ctx, session *services.Session) error {
	token, err := m.sessionService.Encode(session)
	if err != nil {
		return err
	}
	ttl := m.sessionService.TTL()
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  utils.UTCNow().Add(ttl),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: m.sameSite,
	})
	c.Locals(SessionLocalsKey, session)
	return nil
}

// Clear destroys the session cookie
func (m *SessionMiddleware) Clear(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: m.sameSite,
	})
	c.Locals(SessionLocalsKey, &services.Session{})
}

// SessionFrom returns the session loaded for this request, never nil
func SessionFrom(c fiber.Ctx) *services.Session {
	if s, ok := c.Locals(SessionLocalsKey).(*services.Session); ok && s != nil {
		return s
	}
	return &services.Session{}
}

func sameSiteMode(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return fiber.CookieSameSiteStrictMode
	case "none":
		return fiber.CookieSameSiteNoneMode
	default:
		return fiber.CookieSameSiteLaxMode
	}
}
