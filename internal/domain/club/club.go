package club

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Club struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        *string   `json:"city"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Club, error)
	List(ctx context.Context, limit, offset int) ([]*Club, error)
}
