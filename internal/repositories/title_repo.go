package repositories

import "kritika/internal/models"

// TitleFilter narrows a title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

// TitleRepository defines the interface for title catalog access.
type TitleRepository interface {
	List(filter TitleFilter, page, pageSize int) ([]models.Title, error)
	GetByID(id string) (*models.Title, error)
	Create(title *models.Title) error
	Update(title *models.Title) error
	// ReplaceGenres swaps the title's genre set atomically (clear-then-set).
	ReplaceGenres(title *models.Title, genres []models.Genre) error
	Delete(id string) error
	// Rating returns the average review score for one title, or nil when
	// the title has no reviews.
	Rating(titleID string) (*float64, error)
	// Ratings returns average review scores keyed by title ID; titles
	// without reviews are absent from the map.
	Ratings(titleIDs []string) (map[string]float64, error)
}
