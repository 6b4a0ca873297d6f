package domain

import (
	"context"
	"time"
)

// DefaultUserRole is assigned when a user is created without a role.
const DefaultUserRole = "user"

// User represents a site member who can sign in and author blogs.
type User struct {
	ID           string
	Name         string
	Mobile       string
	Email        *string // optional, unique when set
	PasswordHash string
	// Password carries a plaintext password on its way into Create. It is
	// hashed and cleared before the record reaches a repository.
	Password          string
	Role              string
	Designation       string
	Description       *string
	Status            bool
	Photo             string // stored relative path, empty when no photo
	PasswordUpdatedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UserPatch holds the fields supplied to an update. Nil fields are left unchanged.
type UserPatch struct {
	Name        *string
	Mobile      *string
	Email       *string
	Password    *string
	Role        *string
	Designation *string
	Description *string
	Status      *bool
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Repository[User]
	GetByEmail(ctx context.Context, email string) (*User, error)
}
