package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/services"
)

// ReviewHandler handles HTTP requests for reviews nested under a title.
type ReviewHandler struct {
	reviewService *services.ReviewService
	validate      *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validate:      newValidator(),
	}
}

// RegisterRoutes registers the review routes. Reads are public; creating
// requires authentication; updating and deleting are ownership/role gated
// in the service.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	reviewRoutes := router.Group("/titles/:titleID/reviews")
	reviewRoutes.Get("/", h.HandleList)
	reviewRoutes.Get("/:id", h.HandleGet)
	reviewRoutes.Post("/", authRequired, h.HandleCreate)
	reviewRoutes.Patch("/:id", authRequired, h.HandleUpdate)
	reviewRoutes.Delete("/:id", authRequired, h.HandleDelete)
}

// HandleList lists a title's reviews.
func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	reviews, err := h.reviewService.ListByTitle(c.Params("titleID"), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// HandleGet returns one review.
func (h *ReviewHandler) HandleGet(c *fiber.Ctx) error {
	review, err := h.reviewService.Get(c.Params("titleID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// HandleCreate posts the requester's review of the title.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.ReviewInput
	if err := decodeBody(c, h.validate, &input); err != nil {
		return respondError(c, err)
	}
	review, err := h.reviewService.Create(requester(c), c.Params("titleID"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleUpdate partially updates a review.
func (h *ReviewHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch services.ReviewPatch
	if err := decodeBody(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	review, err := h.reviewService.Update(requester(c), c.Params("titleID"), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// HandleDelete removes a review and its comments.
func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.reviewService.Delete(requester(c), c.Params("titleID"), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
