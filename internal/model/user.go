package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for backend accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
}

// RoleStore answers role membership questions.
type RoleStore interface {
	HasRole(ctx context.Context, userID uuid.UUID, role Role) (bool, error)
}

// Role is a backend authorization role.
type Role string

// RoleAdmin grants access to catalog and order management.
const RoleAdmin Role = "admin"

// Account is the backend's stored user with authentication material.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User is the identity projection of an auth session kept by the client.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

// UserFromAccount projects an account onto the client-side user.
func UserFromAccount(a Account) User {
	return User{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
	}
}
