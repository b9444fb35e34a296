package services

import (
	"kritika/internal/apperrors"
	"kritika/internal/models"
)

// Identity is the authenticated caller extracted from an access token.
type Identity struct {
	UserID   string
	Username string
	Role     models.Role
}

// AccessPolicy decides allow/deny for every role- or ownership-gated
// operation. Reads on the catalog are always allowed, including
// unauthenticated, so they never pass through here.
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanManageTaxonomy gates writes to titles, genres and categories:
// admin only.
func (p *AccessPolicy) CanManageTaxonomy(requester Identity) error {
	if requester.Role.IsAdmin() {
		return nil
	}
	return apperrors.Forbidden("administrator role required")
}

// CanManageUsers gates the user directory (list/create/update/delete any
// account): admin only.
func (p *AccessPolicy) CanManageUsers(requester Identity) error {
	if requester.Role.IsAdmin() {
		return nil
	}
	return apperrors.Forbidden("administrator role required")
}

// CanModifyContribution gates updates and deletes of reviews and comments:
// admins, moderators, or the resource's author.
func (p *AccessPolicy) CanModifyContribution(requester Identity, authorID string) error {
	if requester.Role.IsAdmin() || requester.Role.IsModerator() || requester.UserID == authorID {
		return nil
	}
	return apperrors.Forbidden("you do not have permission to modify this resource")
}
