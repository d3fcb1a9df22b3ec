package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jackiexiao/hackclub/internal/domain/event"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

type postgresRegistrationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresRegistrationRepo(db *pgxpool.Pool, logger logger.Logger) event.Repository {
	return &postgresRegistrationRepo{db: db, logger: logger}
}

func (r *postgresRegistrationRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM event_registrations WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, apperror.NewInternal("failed to count event registrations", err)
	}
	return count, nil
}
