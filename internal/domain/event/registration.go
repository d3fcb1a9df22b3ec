package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Registration is a read model: the profile service only counts these rows
// to feed level computation, it never writes them.
type Registration struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	EventName string    `json:"eventName"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
