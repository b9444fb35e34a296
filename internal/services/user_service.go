package services

import (
	"kritika/internal/apperrors"
	"kritika/internal/models"
	"kritika/internal/repositories"
)

// UserPatch is a partial account update. Nil fields are left untouched.
type UserPatch struct {
	Username  *string      `json:"username"`
	Email     *string      `json:"email" validate:"omitempty,email"`
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role"`
}

// UserService implements directory management (admin-only) and the
// self-service profile paths.
type UserService struct {
	userRepo repositories.UserRepository
	policy   *AccessPolicy
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, policy *AccessPolicy) *UserService {
	return &UserService{userRepo: userRepo, policy: policy}
}

// List returns directory accounts, optionally filtered by username search.
func (s *UserService) List(requester Identity, search string, page, pageSize int) ([]models.User, error) {
	if err := s.policy.CanManageUsers(requester); err != nil {
		return nil, err
	}
	return s.userRepo.List(search, page, pageSize)
}

// Create registers a new account with an explicit role.
func (s *UserService) Create(requester Identity, user *models.User) error {
	if err := s.policy.CanManageUsers(requester); err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if !user.Role.Valid() {
		return apperrors.BadRequest("unknown role %q", user.Role)
	}
	return s.userRepo.Create(user)
}

// GetByUsername returns one directory account.
func (s *UserService) GetByUsername(requester Identity, username string) (*models.User, error) {
	if err := s.policy.CanManageUsers(requester); err != nil {
		return nil, err
	}
	return s.userRepo.GetByUsername(username)
}

// UpdateByUsername applies a partial update to any account, role included.
func (s *UserService) UpdateByUsername(requester Identity, username string, patch UserPatch) (*models.User, error) {
	if err := s.policy.CanManageUsers(requester); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, apperrors.BadRequest("unknown role %q", *patch.Role)
	}
	applyPatch(user, patch, true)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteByUsername removes an account from the directory.
func (s *UserService) DeleteByUsername(requester Identity, username string) error {
	if err := s.policy.CanManageUsers(requester); err != nil {
		return err
	}
	return s.userRepo.DeleteByUsername(username)
}

// Profile returns the requester's own account.
func (s *UserService) Profile(requester Identity) (*models.User, error) {
	return s.userRepo.GetByID(requester.UserID)
}

// UpdateProfile applies a partial self-service update. The role field is
// deliberately ignored on this path: accounts cannot promote themselves.
func (s *UserService) UpdateProfile(requester Identity, patch UserPatch) (*models.User, error) {
	user, err := s.userRepo.GetByID(requester.UserID)
	if err != nil {
		return nil, err
	}
	applyPatch(user, patch, false)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func applyPatch(user *models.User, patch UserPatch, allowRole bool) {
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if allowRole && patch.Role != nil {
		user.Role = *patch.Role
	}
}
