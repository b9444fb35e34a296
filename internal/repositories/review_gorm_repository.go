package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kritika/internal/apperrors"
	"kritika/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// ListByTitle retrieves a title's reviews with authors preloaded, newest
// first.
func (r *GORMReviewRepository) ListByTitle(titleID string, page, pageSize int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Author").Where("title_id = ?", titleID).
		Order("created_at DESC").Scopes(paginate(page, pageSize)).Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for title %s: %w", titleID, err)
	}
	return reviews, nil
}

// GetByID retrieves one review of the given title.
func (r *GORMReviewRepository) GetByID(titleID, id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").First(&review, "id = ? AND title_id = ?", id, titleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found").WithCause(err)
		}
		return nil, fmt.Errorf("failed to get review by ID %s: %w", id, err)
	}
	return &review, nil
}

// Create creates a new review. A second review by the same author on the
// same title trips the composite unique index and surfaces as Conflict.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("you have already reviewed this title").WithCause(err)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update persists changes to an existing review.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	res := r.db.Omit("Author", "Title").Save(review)
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("review not found")
	}
	return nil
}

// Delete removes a review together with its comments.
func (r *GORMReviewRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "review_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete comments for review %s: %w", id, err)
		}
		res := tx.Delete(&models.Review{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete review: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("review not found")
		}
		return nil
	})
}

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

// ListByReview retrieves a review's comments with authors preloaded, newest
// first.
func (r *GORMCommentRepository) ListByReview(reviewID string, page, pageSize int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").Where("review_id = ?", reviewID).
		Order("created_at DESC").Scopes(paginate(page, pageSize)).Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for review %s: %w", reviewID, err)
	}
	return comments, nil
}

// GetByID retrieves one comment of the given review.
func (r *GORMCommentRepository) GetByID(reviewID, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ? AND review_id = ?", id, reviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment not found").WithCause(err)
		}
		return nil, fmt.Errorf("failed to get comment by ID %s: %w", id, err)
	}
	return &comment, nil
}

// Create creates a new comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Update persists changes to an existing comment.
func (r *GORMCommentRepository) Update(comment *models.Comment) error {
	res := r.db.Omit("Author", "Review").Save(comment)
	if res.Error != nil {
		return fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("comment not found")
	}
	return nil
}

// Delete removes a comment by its ID.
func (r *GORMCommentRepository) Delete(id string) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("comment not found")
	}
	return nil
}
