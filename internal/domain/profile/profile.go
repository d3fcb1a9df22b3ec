package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Jackiexiao/hackclub/internal/domain/club"
)

// UserProfile is the aggregate root for a member's public profile. It owns
// its Projects and SocialLinks (replaced wholesale on update) and holds a
// non-owning reference to a Club.
type UserProfile struct {
	ID          uuid.UUID    `json:"id"`
	Email       string       `json:"email"`
	Slug        *string      `json:"slug"`
	RealName    string       `json:"realName"`
	Nickname    *string      `json:"nickname"`
	PhoneNumber *string      `json:"phoneNumber"`
	Wechat      *string      `json:"wechat"`
	SelfIntro   *string      `json:"selfIntro"`
	Occupation  *string      `json:"occupation"`
	Gender      *Gender      `json:"gender"`
	Field       *Field       `json:"field"`
	Status      *Status      `json:"status"`
	Resources   *string      `json:"resources"`
	HelpNeeded  *string      `json:"helpNeeded"`
	Level       int          `json:"level"`
	ClubID      *uuid.UUID   `json:"clubId"`
	Club        *club.Club   `json:"club"`
	Projects    []Project    `json:"projects"`
	SocialLinks []SocialLink `json:"socialLinks"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Project struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	ProjectURL  *string   `json:"projectUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SocialLink struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Platform Platform  `json:"platform"`
	URL      string    `json:"url"`
}

// UpdateFields carries the scalar profile fields of an update. A nil pointer
// means "leave the stored value alone".
type UpdateFields struct {
	ClubID      *uuid.UUID
	RealName    string
	Nickname    *string
	PhoneNumber *string
	Wechat      *string
	SelfIntro   *string
	Occupation  *string
	Gender      *Gender
	Field       *Field
	Status      *Status
	Resources   *string
	HelpNeeded  *string
}

type Repository interface {
	// FindByID returns the hydrated profile (club, projects, social links)
	// or an apperror.ErrNotFound when no such user exists.
	FindByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	FindBySlug(ctx context.Context, slug string) (*UserProfile, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Update writes the scalar fields plus slug/level and, when projects or
	// links is non-nil, replaces the whole child collection in the same
	// transaction. nil means the collection is left untouched.
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields, slug *string, level int, projects []Project, links []SocialLink) error
	CountProjects(ctx context.Context, userID uuid.UUID) (int, error)
}
