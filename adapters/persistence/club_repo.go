package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jackiexiao/hackclub/internal/domain/club"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

type postgresClubRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresClubRepo(db *pgxpool.Pool, logger logger.Logger) club.Repository {
	return &postgresClubRepo{db: db, logger: logger}
}

func (r *postgresClubRepo) FindByID(ctx context.Context, id uuid.UUID) (*club.Club, error) {
	c := &club.Club{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, city, description, created_at FROM clubs WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.City, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("club", id.String())
		}
		return nil, apperror.NewInternal("failed to query club", err)
	}
	return c, nil
}

func (r *postgresClubRepo) List(ctx context.Context, limit, offset int) ([]*club.Club, error) {
	builder := psql.Select("id, name, city, description, created_at").
		From("clubs").
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build clubs query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query clubs", err)
	}
	defer rows.Close()

	clubs := make([]*club.Club, 0)
	for rows.Next() {
		c := &club.Club{}
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &c.Description, &c.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan club row", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating club rows", err)
	}
	return clubs, nil
}
