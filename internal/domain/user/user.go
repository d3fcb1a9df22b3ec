package user

import (
	"context"

	"github.com/google/uuid"
)

// User is the auth-side projection of a member: just enough to log in. The
// full profile lives in the profile domain and shares the same table.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}
