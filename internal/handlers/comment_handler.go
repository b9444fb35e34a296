package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/services"
)

// CommentHandler handles HTTP requests for comments nested under a
// title's review.
type CommentHandler struct {
	commentService *services.CommentService
	validate       *validator.Validate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validate:       newValidator(),
	}
}

// RegisterRoutes registers the comment routes, mirroring the review rules.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	commentRoutes := router.Group("/titles/:titleID/reviews/:reviewID/comments")
	commentRoutes.Get("/", h.HandleList)
	commentRoutes.Get("/:id", h.HandleGet)
	commentRoutes.Post("/", authRequired, h.HandleCreate)
	commentRoutes.Patch("/:id", authRequired, h.HandleUpdate)
	commentRoutes.Delete("/:id", authRequired, h.HandleDelete)
}

// HandleList lists a review's comments.
func (h *CommentHandler) HandleList(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	comments, err := h.commentService.ListByReview(c.Params("titleID"), c.Params("reviewID"), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// HandleGet returns one comment.
func (h *CommentHandler) HandleGet(c *fiber.Ctx) error {
	comment, err := h.commentService.Get(c.Params("titleID"), c.Params("reviewID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// HandleCreate posts the requester's comment on the review.
func (h *CommentHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.CommentInput
	if err := decodeBody(c, h.validate, &input); err != nil {
		return respondError(c, err)
	}
	comment, err := h.commentService.Create(requester(c), c.Params("titleID"), c.Params("reviewID"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleUpdate partially updates a comment.
func (h *CommentHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch services.CommentPatch
	if err := decodeBody(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	comment, err := h.commentService.Update(requester(c), c.Params("titleID"), c.Params("reviewID"), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// HandleDelete removes a comment.
func (h *CommentHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.commentService.Delete(requester(c), c.Params("titleID"), c.Params("reviewID"), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
