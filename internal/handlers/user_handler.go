package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/models"
	"kritika/internal/services"
)

// UserHandler handles the user directory and the self-service profile
// paths. Every route requires authentication; directory management is
// additionally admin-gated in the service.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the user routes. /users/me comes first so the
// :username wildcard never swallows it.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users", authRequired)
	userRoutes.Get("/me", h.HandleProfile)
	userRoutes.Patch("/me", h.HandleUpdateProfile)
	userRoutes.Get("/", h.HandleList)
	userRoutes.Post("/", h.HandleCreate)
	userRoutes.Get("/:username", h.HandleGet)
	userRoutes.Patch("/:username", h.HandleUpdate)
	userRoutes.Delete("/:username", h.HandleDelete)
}

// HandleList lists directory accounts (admin only), with optional
// ?search= on username.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	users, err := h.userService.List(requester(c), c.Query("search"), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// CreateUserRequest registers a new account on behalf of an admin.
type CreateUserRequest struct {
	Username  string      `json:"username" validate:"required,min=3,max=100"`
	Email     string      `json:"email" validate:"required,email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

// HandleCreate creates a directory account (admin only).
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := decodeBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}
	if err := h.userService.Create(requester(c), user); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGet returns one account by username (admin only).
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.userService.GetByUsername(requester(c), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdate partially updates any account, role included (admin only).
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch services.UserPatch
	if err := decodeBody(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	user, err := h.userService.UpdateByUsername(requester(c), c.Params("username"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleDelete removes an account (admin only).
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.userService.DeleteByUsername(requester(c), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleProfile returns the requester's own account.
func (h *UserHandler) HandleProfile(c *fiber.Ctx) error {
	user, err := h.userService.Profile(requester(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateProfile partially updates the requester's own account. Any
// role field in the body is ignored.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var patch services.UserPatch
	if err := decodeBody(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	user, err := h.userService.UpdateProfile(requester(c), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
