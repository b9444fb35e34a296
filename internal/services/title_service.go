package services

import (
	"time"

	"kritika/internal/apperrors"
	"kritika/internal/models"
	"kritika/internal/repositories"
)

// TitleInput creates a title. Category and genres are addressed by slug.
type TitleInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Year        *int     `json:"year"`
	Description string   `json:"description" validate:"max=500"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// TitlePatch is a partial title update. A present Genre list replaces the
// whole set; a present Category slug replaces the category.
type TitlePatch struct {
	Name        *string   `json:"name" validate:"omitempty,max=100"`
	Year        *int      `json:"year"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// TitleView is the read shape of a title: the record plus its computed
// rating, which is null while the title has no reviews.
type TitleView struct {
	models.Title
	Rating *float64 `json:"rating"`
}

// TitleService handles the title catalog. All slug resolution happens
// before any write, so an unknown slug can never leave a half-applied
// title behind.
type TitleService struct {
	titleRepo    repositories.TitleRepository
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
	policy       *AccessPolicy
}

// NewTitleService creates a new TitleService.
func NewTitleService(
	titleRepo repositories.TitleRepository,
	categoryRepo repositories.CategoryRepository,
	genreRepo repositories.GenreRepository,
	policy *AccessPolicy,
) *TitleService {
	return &TitleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		policy:       policy,
	}
}

// List returns titles with their ratings, optionally filtered.
func (s *TitleService) List(filter repositories.TitleFilter, page, pageSize int) ([]TitleView, error) {
	titles, err := s.titleRepo.List(filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}
	ratings, err := s.titleRepo.Ratings(ids)
	if err != nil {
		return nil, err
	}
	views := make([]TitleView, len(titles))
	for i, t := range titles {
		views[i] = TitleView{Title: t}
		if r, ok := ratings[t.ID]; ok {
			rating := r
			views[i].Rating = &rating
		}
	}
	return views, nil
}

// Get returns one title with its rating.
func (s *TitleService) Get(id string) (*TitleView, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	rating, err := s.titleRepo.Rating(id)
	if err != nil {
		return nil, err
	}
	return &TitleView{Title: *title, Rating: rating}, nil
}

// Create adds a title (admin only). Every referenced slug must resolve or
// nothing is written.
func (s *TitleService) Create(requester Identity, input TitleInput) (*TitleView, error) {
	if err := s.policy.CanManageTaxonomy(requester); err != nil {
		return nil, err
	}
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}
	if input.Category != nil {
		category, err := s.categoryRepo.GetBySlug(*input.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}
	genres, err := s.genreRepo.GetBySlugs(input.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}
	return &TitleView{Title: *title}, nil
}

// Update applies a partial update (admin only). A provided genre list
// replaces the existing set atomically.
func (s *TitleService) Update(requester Identity, id string, patch TitlePatch) (*TitleView, error) {
	if err := s.policy.CanManageTaxonomy(requester); err != nil {
		return nil, err
	}
	if err := validateYear(patch.Year); err != nil {
		return nil, err
	}

	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Resolve every slug before touching the record.
	var newGenres []models.Genre
	if patch.Genre != nil {
		newGenres, err = s.genreRepo.GetBySlugs(*patch.Genre)
		if err != nil {
			return nil, err
		}
	}
	if patch.Category != nil {
		category, err := s.categoryRepo.GetBySlug(*patch.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}
	if patch.Name != nil {
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		title.Year = patch.Year
	}
	if patch.Description != nil {
		title.Description = *patch.Description
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}
	if patch.Genre != nil {
		if err := s.titleRepo.ReplaceGenres(title, newGenres); err != nil {
			return nil, err
		}
	}

	rating, err := s.titleRepo.Rating(id)
	if err != nil {
		return nil, err
	}
	return &TitleView{Title: *title, Rating: rating}, nil
}

// Delete removes a title and, by cascade, its reviews and their comments
// (admin only).
func (s *TitleService) Delete(requester Identity, id string) error {
	if err := s.policy.CanManageTaxonomy(requester); err != nil {
		return err
	}
	return s.titleRepo.Delete(id)
}

func validateYear(year *int) error {
	if year != nil && *year > time.Now().Year() {
		return apperrors.BadRequest("year %d is in the future", *year)
	}
	return nil
}
