package services

import (
	"kritika/internal/models"
	"kritika/internal/repositories"
)

// CommentInput creates a comment; the author and review come from the
// authenticated identity and the URL.
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// CommentPatch is a partial comment update.
type CommentPatch struct {
	Text *string `json:"text"`
}

// CommentView is the read shape of a comment, with the author flattened to
// their username.
type CommentView struct {
	models.Comment
	Author string `json:"author"`
}

// CommentService handles comments nested under a title's review.
type CommentService struct {
	commentRepo repositories.CommentRepository
	reviewRepo  repositories.ReviewRepository
	policy      *AccessPolicy
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, reviewRepo repositories.ReviewRepository, policy *AccessPolicy) *CommentService {
	return &CommentService{commentRepo: commentRepo, reviewRepo: reviewRepo, policy: policy}
}

// ListByReview returns a review's comments; the review must belong to the
// given title.
func (s *CommentService) ListByReview(titleID, reviewID string, page, pageSize int) ([]CommentView, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByReview(reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return commentViews(comments), nil
}

// Get returns one comment of the given review.
func (s *CommentService) Get(titleID, reviewID, id string) (*CommentView, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(reviewID, id)
	if err != nil {
		return nil, err
	}
	view := commentView(*comment)
	return &view, nil
}

// Create attaches the requester's comment to a review of the given title.
func (s *CommentService) Create(requester Identity, titleID, reviewID string, input CommentInput) (*CommentView, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: requester.UserID,
		Text:     input.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return &CommentView{Comment: *comment, Author: requester.Username}, nil
}

// Update applies a partial update; allowed for admins, moderators and the
// author.
func (s *CommentService) Update(requester Identity, titleID, reviewID, id string, patch CommentPatch) (*CommentView, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(reviewID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyContribution(requester, comment.AuthorID); err != nil {
		return nil, err
	}
	if patch.Text != nil {
		comment.Text = *patch.Text
	}
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	view := commentView(*comment)
	return &view, nil
}

// Delete removes a comment; allowed for admins, moderators and the author.
func (s *CommentService) Delete(requester Identity, titleID, reviewID, id string) error {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return err
	}
	comment, err := s.commentRepo.GetByID(reviewID, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanModifyContribution(requester, comment.AuthorID); err != nil {
		return err
	}
	return s.commentRepo.Delete(comment.ID)
}

func commentView(c models.Comment) CommentView {
	v := CommentView{Comment: c}
	if c.Author != nil {
		v.Author = c.Author.Username
	}
	return v
}

func commentViews(comments []models.Comment) []CommentView {
	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = commentView(c)
	}
	return views
}
