package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/models"
	"kritika/internal/services"
)

// TaxonomyRequest creates a category or genre entry.
type TaxonomyRequest struct {
	Name string `json:"name" validate:"required,max=30"`
	Slug string `json:"slug" validate:"required,max=30,slug"`
}

// CategoryHandler handles HTTP requests for categories: public listing,
// admin-only create and delete by slug.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        newValidator(),
	}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Post("/", authRequired, h.HandleCreate)
	categoryRoutes.Delete("/:slug", authRequired, h.HandleDelete)
}

// HandleList lists categories; open to anyone.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	categories, err := h.categoryService.List(page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreate creates a category (admin only).
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req TaxonomyRequest
	if err := decodeBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.categoryService.Create(requester(c), category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDelete removes a category by slug (admin only).
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.categoryService.DeleteBySlug(requester(c), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenreHandler handles HTTP requests for genres, same shape as categories.
type GenreHandler struct {
	genreService *services.GenreService
	validate     *validator.Validate
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(genreService *services.GenreService) *GenreHandler {
	return &GenreHandler{
		genreService: genreService,
		validate:     newValidator(),
	}
}

// RegisterRoutes registers the genre routes.
func (h *GenreHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	genreRoutes := router.Group("/genres")
	genreRoutes.Get("/", h.HandleList)
	genreRoutes.Post("/", authRequired, h.HandleCreate)
	genreRoutes.Delete("/:slug", authRequired, h.HandleDelete)
}

// HandleList lists genres; open to anyone.
func (h *GenreHandler) HandleList(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	genres, err := h.genreService.List(page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(genres)
}

// HandleCreate creates a genre (admin only).
func (h *GenreHandler) HandleCreate(c *fiber.Ctx) error {
	var req TaxonomyRequest
	if err := decodeBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := h.genreService.Create(requester(c), genre); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

// HandleDelete removes a genre by slug (admin only).
func (h *GenreHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.genreService.DeleteBySlug(requester(c), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
