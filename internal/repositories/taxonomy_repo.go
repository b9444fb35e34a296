package repositories

import "kritika/internal/models"

// CategoryRepository defines the interface for category taxonomy access.
// Categories are addressed by slug on all write paths.
type CategoryRepository interface {
	List(page, pageSize int) ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	DeleteBySlug(slug string) error
}

// GenreRepository defines the interface for genre taxonomy access.
type GenreRepository interface {
	List(page, pageSize int) ([]models.Genre, error)
	// GetBySlugs resolves every given slug or fails; it never returns a
	// partial result.
	GetBySlugs(slugs []string) ([]models.Genre, error)
	Create(genre *models.Genre) error
	DeleteBySlug(slug string) error
}
