package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/services"
)

// AuthHandler handles HTTP requests for the confirmation-code flow.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the auth routes. All of them are public.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/email", h.HandleRequestCode)
	authRoutes.Post("/token", h.HandleExchangeCode)
	authRoutes.Post("/refresh", h.HandleRefresh)
}

// EmailRequest asks for a confirmation code to be mailed.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRequestCode mails a signed confirmation code to an existing
// account's address.
func (h *AuthHandler) HandleRequestCode(c *fiber.Ctx) error {
	var req EmailRequest
	if err := decodeBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.authService.RequestConfirmationCode(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"email": req.Email})
}

// TokenRequest exchanges a confirmation code for a credential pair.
type TokenRequest struct {
	Email            string `json:"email" validate:"required,email"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// HandleExchangeCode verifies the code, marks the account verified and
// returns the minted credential.
func (h *AuthHandler) HandleExchangeCode(c *fiber.Ctx) error {
	var req TokenRequest
	if err := decodeBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	credential, err := h.authService.ExchangeCode(c.Context(), req.Email, req.ConfirmationCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(credential)
}

// RefreshRequest trades a refresh token for a new credential pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// HandleRefresh mints a fresh credential pair from a refresh token.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := decodeBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	credential, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(credential)
}
