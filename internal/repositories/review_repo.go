package repositories

import "kritika/internal/models"

// ReviewRepository defines the interface for review access. Reviews are
// always scoped to the title they belong to.
type ReviewRepository interface {
	ListByTitle(titleID string, page, pageSize int) ([]models.Review, error)
	GetByID(titleID, id string) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
}

// CommentRepository defines the interface for comment access, scoped to the
// review a comment belongs to.
type CommentRepository interface {
	ListByReview(reviewID string, page, pageSize int) ([]models.Comment, error)
	GetByID(reviewID, id string) (*models.Comment, error)
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id string) error
}
