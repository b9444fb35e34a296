package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kritika/internal/apperrors"
	"kritika/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// List retrieves categories ordered by name.
func (r *GORMCategoryRepository) List(page, pageSize int) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name").Scopes(paginate(page, pageSize)).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetBySlug retrieves a category by its slug.
func (r *GORMCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category with slug %q not found", slug).WithCause(err)
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

// Create creates a new category.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("category name or slug already exists").WithCause(err)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// DeleteBySlug deletes a category by its slug. Titles referencing it keep
// existing with a null category.
func (r *GORMCategoryRepository) DeleteBySlug(slug string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "slug = ?", slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("category with slug %q not found", slug)
			}
			return fmt.Errorf("failed to get category by slug %s: %w", slug, err)
		}
		err := tx.Model(&models.Title{}).Where("category_id = ?", category.ID).
			Update("category_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach titles from category %s: %w", slug, err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

// GORMGenreRepository is a GORM implementation of GenreRepository.
type GORMGenreRepository struct {
	db *gorm.DB
}

// NewGORMGenreRepository creates a new instance of GORMGenreRepository.
func NewGORMGenreRepository(db *gorm.DB) *GORMGenreRepository {
	return &GORMGenreRepository{db: db}
}

// List retrieves genres ordered by name.
func (r *GORMGenreRepository) List(page, pageSize int) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Order("name").Scopes(paginate(page, pageSize)).Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// GetBySlugs resolves all given slugs to genres. If any slug is unknown the
// whole lookup fails with NotFound so callers never apply a partial set.
func (r *GORMGenreRepository) GetBySlugs(slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var genres []models.Genre
	if err := r.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to get genres by slugs: %w", err)
	}
	if len(genres) != len(uniqueStrings(slugs)) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, s := range slugs {
			if !found[s] {
				return nil, apperrors.NotFound("genre with slug %q not found", s)
			}
		}
	}
	return genres, nil
}

// Create creates a new genre.
func (r *GORMGenreRepository) Create(genre *models.Genre) error {
	if genre.ID == "" {
		genre.ID = uuid.New().String()
	}
	if err := r.db.Create(genre).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("genre name or slug already exists").WithCause(err)
		}
		return fmt.Errorf("failed to create genre: %w", err)
	}
	return nil
}

// DeleteBySlug deletes a genre by its slug together with its title links.
func (r *GORMGenreRepository) DeleteBySlug(slug string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.First(&genre, "slug = ?", slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("genre with slug %q not found", slug)
			}
			return fmt.Errorf("failed to get genre by slug %s: %w", slug, err)
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE genre_id = ?", genre.ID).Error; err != nil {
			return fmt.Errorf("failed to delete title links for genre %s: %w", slug, err)
		}
		if err := tx.Delete(&genre).Error; err != nil {
			return fmt.Errorf("failed to delete genre: %w", err)
		}
		return nil
	})
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
