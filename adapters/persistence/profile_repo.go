package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	clubdomain "github.com/Jackiexiao/hackclub/internal/domain/club"
	"github.com/Jackiexiao/hackclub/internal/domain/profile"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

const pgUniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

const profileColumns = `id, email, slug, real_name, nickname, phone_number, wechat, self_intro,
	occupation, gender, field, status, resources, help_needed, level, club_id, created_at, updated_at`

func scanProfile(row pgx.Row) (*profile.UserProfile, error) {
	p := &profile.UserProfile{}
	var gender, field, status *string

	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Slug,
		&p.RealName,
		&p.Nickname,
		&p.PhoneNumber,
		&p.Wechat,
		&p.SelfIntro,
		&p.Occupation,
		&gender,
		&field,
		&status,
		&p.Resources,
		&p.HelpNeeded,
		&p.Level,
		&p.ClubID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gender != nil {
		g := profile.Gender(*gender)
		p.Gender = &g
	}
	if field != nil {
		f := profile.Field(*field)
		p.Field = &f
	}
	if status != nil {
		s := profile.Status(*status)
		p.Status = &s
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", id.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	if err := r.hydrate(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) FindBySlug(ctx context.Context, slug string) (*profile.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE slug = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", slug)
		}
		return nil, apperror.NewInternal("failed to query profile by slug", err)
	}
	if err := r.hydrate(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, apperror.NewInternal("failed to check slug existence", err)
	}
	return exists, nil
}

func (r *postgresProfileRepo) CountProjects(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, apperror.NewInternal("failed to count projects", err)
	}
	return count, nil
}

// Update writes the profile row and, for each non-nil collection, replaces
// every child row inside the same transaction. Slug conflicts from the
// unique index surface as apperror.ErrConflict so the caller can retry.
func (r *postgresProfileRepo) Update(
	ctx context.Context,
	id uuid.UUID,
	fields profile.UpdateFields,
	slug *string,
	level int,
	projects []profile.Project,
	links []profile.SocialLink,
) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	builder := psql.Update("users").
		Set("real_name", fields.RealName).
		Set("slug", slug).
		Set("level", level).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})

	if fields.ClubID != nil {
		builder = builder.Set("club_id", *fields.ClubID)
	}
	if fields.Nickname != nil {
		builder = builder.Set("nickname", *fields.Nickname)
	}
	if fields.PhoneNumber != nil {
		builder = builder.Set("phone_number", *fields.PhoneNumber)
	}
	if fields.Wechat != nil {
		builder = builder.Set("wechat", *fields.Wechat)
	}
	if fields.SelfIntro != nil {
		builder = builder.Set("self_intro", *fields.SelfIntro)
	}
	if fields.Occupation != nil {
		builder = builder.Set("occupation", *fields.Occupation)
	}
	if fields.Gender != nil {
		builder = builder.Set("gender", string(*fields.Gender))
	}
	if fields.Field != nil {
		builder = builder.Set("field", string(*fields.Field))
	}
	if fields.Status != nil {
		builder = builder.Set("status", string(*fields.Status))
	}
	if fields.Resources != nil {
		builder = builder.Set("resources", *fields.Resources)
	}
	if fields.HelpNeeded != nil {
		builder = builder.Set("help_needed", *fields.HelpNeeded)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile update query", err)
	}

	cmdTag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "slug", derefOrEmpty(slug))
		}
		return apperror.NewInternal("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", id.String())
	}

	if projects != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE user_id = $1`, id); err != nil {
			return apperror.NewInternal("failed to clear projects", err)
		}
		for _, p := range projects {
			_, err := tx.Exec(ctx,
				`INSERT INTO projects (id, user_id, name, description, image_url, project_url) VALUES ($1, $2, $3, $4, $5, $6)`,
				p.ID, id, p.Name, p.Description, p.ImageURL, p.ProjectURL,
			)
			if err != nil {
				return apperror.NewInternal("failed to insert project", err)
			}
		}
	}

	if links != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM social_links WHERE user_id = $1`, id); err != nil {
			return apperror.NewInternal("failed to clear social links", err)
		}
		for _, l := range links {
			_, err := tx.Exec(ctx,
				`INSERT INTO social_links (id, user_id, platform, url) VALUES ($1, $2, $3, $4)`,
				l.ID, id, string(l.Platform), l.URL,
			)
			if err != nil {
				return apperror.NewInternal("failed to insert social link", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "slug", derefOrEmpty(slug))
		}
		return apperror.NewInternal("failed to commit profile update", err)
	}
	return nil
}

func (r *postgresProfileRepo) hydrate(ctx context.Context, p *profile.UserProfile) error {
	if p.ClubID != nil {
		c, err := r.findClub(ctx, *p.ClubID)
		if err != nil {
			return err
		}
		p.Club = c
	}

	projects, err := r.listProjects(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Projects = projects

	links, err := r.listLinks(ctx, p.ID)
	if err != nil {
		return err
	}
	p.SocialLinks = links
	return nil
}

func (r *postgresProfileRepo) findClub(ctx context.Context, id uuid.UUID) (*clubdomain.Club, error) {
	c := &clubdomain.Club{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, city, description, created_at FROM clubs WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.City, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Dangling reference; surface the profile without a club.
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query club", err)
	}
	return c, nil
}

func (r *postgresProfileRepo) listProjects(ctx context.Context, userID uuid.UUID) ([]profile.Project, error) {
	builder := psql.Select("id, user_id, name, description, image_url, project_url, created_at").
		From("projects").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build projects query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	defer rows.Close()

	projects := make([]profile.Project, 0)
	for rows.Next() {
		var p profile.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.ImageURL, &p.ProjectURL, &p.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan project row", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProfileRepo) listLinks(ctx context.Context, userID uuid.UUID) ([]profile.SocialLink, error) {
	builder := psql.Select("id, user_id, platform, url").
		From("social_links").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("platform ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build social links query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query social links", err)
	}
	defer rows.Close()

	links := make([]profile.SocialLink, 0)
	for rows.Next() {
		var l profile.SocialLink
		var platform string
		if err := rows.Scan(&l.ID, &l.UserID, &platform, &l.URL); err != nil {
			return nil, apperror.NewInternal("failed to scan social link row", err)
		}
		l.Platform = profile.Platform(platform)
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating social link rows", err)
	}
	return links, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
