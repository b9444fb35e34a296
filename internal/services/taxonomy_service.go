package services

import (
	"kritika/internal/models"
	"kritika/internal/repositories"
)

// CategoryService handles the category taxonomy: public listing,
// admin-gated create and delete.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	policy       *AccessPolicy
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, policy *AccessPolicy) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, policy: policy}
}

// List returns categories; readable by anyone, authenticated or not.
func (s *CategoryService) List(page, pageSize int) ([]models.Category, error) {
	return s.categoryRepo.List(page, pageSize)
}

// Create adds a category (admin only).
func (s *CategoryService) Create(requester Identity, category *models.Category) error {
	if err := s.policy.CanManageTaxonomy(requester); err != nil {
		return err
	}
	return s.categoryRepo.Create(category)
}

// DeleteBySlug removes a category (admin only). Titles keep existing with
// a null category.
func (s *CategoryService) DeleteBySlug(requester Identity, slug string) error {
	if err := s.policy.CanManageTaxonomy(requester); err != nil {
		return err
	}
	return s.categoryRepo.DeleteBySlug(slug)
}

// GenreService handles the genre taxonomy, same shape as categories.
type GenreService struct {
	genreRepo repositories.GenreRepository
	policy    *AccessPolicy
}

// NewGenreService creates a new GenreService.
func NewGenreService(genreRepo repositories.GenreRepository, policy *AccessPolicy) *GenreService {
	return &GenreService{genreRepo: genreRepo, policy: policy}
}

// List returns genres; readable by anyone.
func (s *GenreService) List(page, pageSize int) ([]models.Genre, error) {
	return s.genreRepo.List(page, pageSize)
}

// Create adds a genre (admin only).
func (s *GenreService) Create(requester Identity, genre *models.Genre) error {
	if err := s.policy.CanManageTaxonomy(requester); err != nil {
		return err
	}
	return s.genreRepo.Create(genre)
}

// DeleteBySlug removes a genre (admin only).
func (s *GenreService) DeleteBySlug(requester Identity, slug string) error {
	if err := s.policy.CanManageTaxonomy(requester); err != nil {
		return err
	}
	return s.genreRepo.DeleteBySlug(slug)
}
