package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/repositories"
	"kritika/internal/services"
)

// TitleHandler handles HTTP requests for the title catalog.
type TitleHandler struct {
	titleService *services.TitleService
	validate     *validator.Validate
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(titleService *services.TitleService) *TitleHandler {
	return &TitleHandler{
		titleService: titleService,
		validate:     newValidator(),
	}
}

// RegisterRoutes registers the title routes. Reads are public, writes
// require an authenticated admin.
func (h *TitleHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	titleRoutes := router.Group("/titles")
	titleRoutes.Get("/", h.HandleList)
	titleRoutes.Get("/:id", h.HandleGet)
	titleRoutes.Post("/", authRequired, h.HandleCreate)
	titleRoutes.Patch("/:id", authRequired, h.HandleUpdate)
	titleRoutes.Delete("/:id", authRequired, h.HandleDelete)
}

// HandleList lists titles with ratings; supports ?category=, ?genre=,
// ?name= and ?year= filters.
func (h *TitleHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if year := c.QueryInt("year", 0); year != 0 {
		filter.Year = &year
	}
	page, pageSize := pageParams(c)
	titles, err := h.titleService.List(filter, page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(titles)
}

// HandleGet returns one title with its rating.
func (h *TitleHandler) HandleGet(c *fiber.Ctx) error {
	title, err := h.titleService.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(title)
}

// HandleCreate creates a title (admin only); category and genres are
// given as slugs.
func (h *TitleHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.TitleInput
	if err := decodeBody(c, h.validate, &input); err != nil {
		return respondError(c, err)
	}
	title, err := h.titleService.Create(requester(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(title)
}

// HandleUpdate partially updates a title (admin only). A genre list in the
// body replaces the existing set.
func (h *TitleHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch services.TitlePatch
	if err := decodeBody(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	title, err := h.titleService.Update(requester(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(title)
}

// HandleDelete removes a title and its reviews (admin only).
func (h *TitleHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.titleService.Delete(requester(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
