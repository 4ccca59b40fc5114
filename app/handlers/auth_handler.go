package handlers

import (
	"log"
	"net/http"

	businessflow "github.com/amirphl/vendor-campaigns/business_flow"
	"github.com/amirphl/vendor-campaigns/app/middleware"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for OAuth login handlers
type AuthHandlerInterface interface {
	Login(c fiber.Ctx) error
	Callback(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

// AuthHandler handles the OAuth login round trip
type AuthHandler struct {
	baseHandler
	authFlow businessflow.AuthFlow
	sessions SessionStore
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authFlow businessflow.AuthFlow, sessions SessionStore) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(),
		authFlow:    authFlow,
		sessions:    sessions,
	}
}

// Login starts the OAuth flow
// @Summary Start login
// @Description Stores a fresh anti-forgery state in the session and redirects to the identity provider
// @Tags Auth
// @Success 302 "Redirect to the identity provider"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /login [get]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/login")
	defer cancel()

	start, err := h.authFlow.BeginLogin(ctx)
	if err != nil {
		log.Println("Begin login failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to start login", "LOGIN_FAILED", nil)
	}
	if err := h.sessions.Save(c, start.Session); err != nil {
		log.Println("Session save failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to start login", "SESSION_SAVE_FAILED", nil)
	}

	return c.Redirect().Status(fiber.StatusFound).To(start.RedirectURL)
}

// Callback completes the OAuth flow
// @Summary OAuth callback
// @Description Validates state, exchanges the code, loads the profile and replaces the session
// @Tags Auth
// @Param code query string true "Authorization code"
// @Param state query string true "Anti-forgery state"
// @Success 302 "Redirect to the index page"
// @Failure 400 {string} string "State mismatch or missing code"
// @Failure 403 {string} string "Account is not a vendor"
// @Failure 502 {string} string "Identity provider failure"
// @Router /auth/callback [get]
func (h *AuthHandler) Callback(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/auth/callback")
	defer cancel()

	pending := middleware.SessionFrom(c)
	session, err := h.authFlow.CompleteLogin(ctx, pending, c.Query("code"), c.Query("state"), clientMetadata(c))
	if err != nil {
		switch {
		case businessflow.IsStateMismatch(err):
			return c.Status(fiber.StatusBadRequest).SendString("OAuth state mismatch.")
		case businessflow.IsMissingCode(err):
			return c.Status(fiber.StatusBadRequest).SendString("Missing code")
		case businessflow.IsTokenExchangeFailed(err):
			return c.Status(fiber.StatusBadGateway).SendString("Token request failed")
		case businessflow.IsProfileFetchFailed(err):
			status := businessflow.UpstreamStatusOf(err)
			if status < http.StatusBadRequest {
				status = fiber.StatusBadGateway
			}
			return c.Status(status).SendString("/users/me failed")
		case businessflow.IsNotAVendor(err):
			return c.Status(fiber.StatusForbidden).SendString("این حساب غرفه‌دار نیست.")
		}
		log.Println("Complete login failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	if err := h.sessions.Save(c, session); err != nil {
		log.Println("Session save failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "SESSION_SAVE_FAILED", nil)
	}
	return c.Redirect().Status(fiber.StatusFound).To("/")
}

// Logout destroys the session
// @Summary Logout
// @Tags Auth
// @Success 302 "Redirect to the index page"
// @Router /logout [get]
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.Redirect().Status(fiber.StatusFound).To("/")
}
