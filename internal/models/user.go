package models

import "time"

// Role is the coarse-grained permission tier of a user account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool     { return r == RoleAdmin }
func (r Role) IsModerator() bool { return r == RoleModerator }

// User represents an account in the directory. Email is the login key;
// an account cannot obtain an access credential before its first successful
// confirmation-code exchange sets IsVerified.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username   string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(254);not null"`
	FirstName  string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName   string    `json:"last_name" gorm:"type:varchar(100)"`
	Bio        string    `json:"bio"`
	Role       Role      `json:"role" gorm:"type:varchar(9);default:user"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
