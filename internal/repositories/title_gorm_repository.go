package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kritika/internal/apperrors"
	"kritika/internal/models"
)

// GORMTitleRepository is a GORM implementation of TitleRepository.
type GORMTitleRepository struct {
	db *gorm.DB
}

// NewGORMTitleRepository creates a new instance of GORMTitleRepository.
func NewGORMTitleRepository(db *gorm.DB) *GORMTitleRepository {
	return &GORMTitleRepository{db: db}
}

// List retrieves titles with category and genres preloaded, newest first.
func (r *GORMTitleRepository) List(filter TitleFilter, page, pageSize int) ([]models.Title, error) {
	var titles []models.Title
	q := r.db.Preload("Category").Preload("Genres").
		Order("titles.created_at DESC").Scopes(paginate(page, pageSize))

	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		q = q.Where("titles.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}

	if err := q.Find(&titles).Error; err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	return titles, nil
}

// GetByID retrieves a single title with category and genres preloaded.
func (r *GORMTitleRepository) GetByID(id string) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").Preload("Genres").First(&title, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("title not found").WithCause(err)
		}
		return nil, fmt.Errorf("failed to get title by ID %s: %w", id, err)
	}
	return &title, nil
}

// Create creates a new title together with its genre associations.
func (r *GORMTitleRepository) Create(title *models.Title) error {
	if title.ID == "" {
		title.ID = uuid.New().String()
	}
	if err := r.db.Create(title).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("title already exists in this category").WithCause(err)
		}
		return fmt.Errorf("failed to create title: %w", err)
	}
	return nil
}

// Update persists scalar field changes to an existing title. Genre changes
// go through ReplaceGenres.
func (r *GORMTitleRepository) Update(title *models.Title) error {
	res := r.db.Omit("Genres").Save(title)
	if res.Error != nil {
		return fmt.Errorf("failed to update title: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("title not found")
	}
	return nil
}

// ReplaceGenres swaps the genre set in one association operation: the old
// links are cleared and the new set attached, never merged.
func (r *GORMTitleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	if err := r.db.Model(title).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("failed to replace title genres: %w", err)
	}
	title.Genres = genres
	return nil
}

// Delete removes a title; its reviews (and their comments) go with it.
func (r *GORMTitleRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var reviewIDs []string
		if err := tx.Model(&models.Review{}).Where("title_id = ?", id).Pluck("id", &reviewIDs).Error; err != nil {
			return fmt.Errorf("failed to collect reviews for title %s: %w", id, err)
		}
		if len(reviewIDs) > 0 {
			if err := tx.Delete(&models.Comment{}, "review_id IN ?", reviewIDs).Error; err != nil {
				return fmt.Errorf("failed to delete comments for title %s: %w", id, err)
			}
			if err := tx.Delete(&models.Review{}, "title_id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete reviews for title %s: %w", id, err)
			}
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete genre links for title %s: %w", id, err)
		}
		res := tx.Delete(&models.Title{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete title: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("title not found")
		}
		return nil
	})
}

// Rating computes the average review score for one title. A title with no
// reviews has no rating, not a zero one.
func (r *GORMTitleRepository) Rating(titleID string) (*float64, error) {
	var rating sql.NullFloat64
	err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).
		Select("AVG(score)").Scan(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating for title %s: %w", titleID, err)
	}
	if !rating.Valid {
		return nil, nil
	}
	return &rating.Float64, nil
}

// Ratings computes average review scores for a batch of titles in one query.
func (r *GORMTitleRepository) Ratings(titleIDs []string) (map[string]float64, error) {
	ratings := make(map[string]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return ratings, nil
	}
	rows := []struct {
		TitleID string
		Rating  float64
	}{}
	err := r.db.Model(&models.Review{}).Where("title_id IN ?", titleIDs).
		Select("title_id, AVG(score) AS rating").Group("title_id").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute title ratings: %w", err)
	}
	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}
	return ratings, nil
}
