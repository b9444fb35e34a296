package services

import (
	"kritika/internal/apperrors"
	"kritika/internal/models"
	"kritika/internal/repositories"
)

// ReviewInput creates a review. The author and title come from the
// authenticated identity and the URL, never from the body.
type ReviewInput struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

// ReviewPatch is a partial review update.
type ReviewPatch struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

// ReviewView is the read shape of a review, with the author flattened to
// their username.
type ReviewView struct {
	models.Review
	Author string `json:"author"`
}

// ReviewService handles reviews nested under titles.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	titleRepo  repositories.TitleRepository
	policy     *AccessPolicy
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, titleRepo repositories.TitleRepository, policy *AccessPolicy) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, titleRepo: titleRepo, policy: policy}
}

// ListByTitle returns a title's reviews; the title must exist.
func (s *ReviewService) ListByTitle(titleID string, page, pageSize int) ([]ReviewView, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByTitle(titleID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return reviewViews(reviews), nil
}

// Get returns one review of the given title.
func (s *ReviewService) Get(titleID, id string) (*ReviewView, error) {
	review, err := s.reviewRepo.GetByID(titleID, id)
	if err != nil {
		return nil, err
	}
	view := reviewView(*review)
	return &view, nil
}

// Create adds the requester's review of a title. A second review of the
// same title by the same author fails with Conflict; under concurrent
// submissions the storage uniqueness constraint picks the loser.
func (s *ReviewService) Create(requester Identity, titleID string, input ReviewInput) (*ReviewView, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	if input.Score < 1 || input.Score > 10 {
		return nil, apperrors.BadRequest("score must be between 1 and 10")
	}
	review := &models.Review{
		TitleID:  titleID,
		AuthorID: requester.UserID,
		Text:     input.Text,
		Score:    input.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return &ReviewView{Review: *review, Author: requester.Username}, nil
}

// Update applies a partial update; allowed for admins, moderators and the
// author.
func (s *ReviewService) Update(requester Identity, titleID, id string, patch ReviewPatch) (*ReviewView, error) {
	review, err := s.reviewRepo.GetByID(titleID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyContribution(requester, review.AuthorID); err != nil {
		return nil, err
	}
	if patch.Score != nil {
		if *patch.Score < 1 || *patch.Score > 10 {
			return nil, apperrors.BadRequest("score must be between 1 and 10")
		}
		review.Score = *patch.Score
	}
	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	view := reviewView(*review)
	return &view, nil
}

// Delete removes a review; allowed for admins, moderators and the author.
// Its comments go with it.
func (s *ReviewService) Delete(requester Identity, titleID, id string) error {
	review, err := s.reviewRepo.GetByID(titleID, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanModifyContribution(requester, review.AuthorID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(review.ID)
}

func reviewView(r models.Review) ReviewView {
	v := ReviewView{Review: r}
	if r.Author != nil {
		v.Author = r.Author.Username
	}
	return v
}

func reviewViews(reviews []models.Review) []ReviewView {
	views := make([]ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = reviewView(r)
	}
	return views
}
