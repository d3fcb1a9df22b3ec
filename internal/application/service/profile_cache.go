package service

import (
	"context"

	"github.com/Jackiexiao/hackclub/internal/domain/profile"
)

// ProfileCache is the read-side cache for public profile lookups by slug.
type ProfileCache interface {
	// GetBySlug returns (nil, nil) on a cache miss.
	GetBySlug(ctx context.Context, slug string) (*profile.UserProfile, error)
	SetBySlug(ctx context.Context, p *profile.UserProfile) error
	Invalidate(ctx context.Context, slug string) error
}
