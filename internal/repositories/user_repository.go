package repositories

import "kritika/internal/models"

// UserRepository defines the interface for account directory access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List(search string, page, pageSize int) ([]models.User, error)
	Update(user *models.User) error
	DeleteByUsername(username string) error
}
