package profile

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Jackiexiao/hackclub/adapters/event"
	clubdomain "github.com/Jackiexiao/hackclub/internal/domain/club"
	"github.com/Jackiexiao/hackclub/internal/domain/profile"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
)

// fakeProfileRepo is an in-memory stand-in that mimics the DB contract,
// including the unique index on slug: a write whose slug is already claimed
// fails with a conflict even when the earlier probe said it was free.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.UserProfile
	projects map[uuid.UUID][]profile.Project
	links    map[uuid.UUID][]profile.SocialLink
	slugs    map[string]uuid.UUID

	// takenAtWrite simulates a concurrent writer that claimed the slug
	// between probe and write: SlugExists does not see it, Update does.
	// After the conflict the claim becomes visible to SlugExists.
	takenAtWrite map[string]bool

	updateCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles:     map[uuid.UUID]*profile.UserProfile{},
		projects:     map[uuid.UUID][]profile.Project{},
		links:        map[uuid.UUID][]profile.SocialLink{},
		slugs:        map[string]uuid.UUID{},
		takenAtWrite: map[string]bool{},
	}
}

func (r *fakeProfileRepo) addProfile(p *profile.UserProfile) {
	r.profiles[p.ID] = p
	if p.Slug != nil {
		r.slugs[*p.Slug] = p.ID
	}
}

func (r *fakeProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	return r.hydrate(p), nil
}

func (r *fakeProfileRepo) FindBySlug(ctx context.Context, slug string) (*profile.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.slugs[slug]
	if !ok {
		return nil, apperror.NewNotFound("profile", slug)
	}
	return r.hydrate(r.profiles[id]), nil
}

func (r *fakeProfileRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.slugs[slug]
	return ok, nil
}

func (r *fakeProfileRepo) CountProjects(ctx context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.projects[userID]), nil
}

func (r *fakeProfileRepo) Update(
	ctx context.Context,
	id uuid.UUID,
	fields profile.UpdateFields,
	slug *string,
	level int,
	projects []profile.Project,
	links []profile.SocialLink,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++

	p, ok := r.profiles[id]
	if !ok {
		return apperror.NewNotFound("profile", id.String())
	}

	if slug != nil {
		if r.takenAtWrite[*slug] {
			// The concurrent winner's row is now committed and visible.
			r.slugs[*slug] = uuid.New()
			delete(r.takenAtWrite, *slug)
			return apperror.NewConflict("profile", "slug", *slug)
		}
		if owner, claimed := r.slugs[*slug]; claimed && owner != id {
			return apperror.NewConflict("profile", "slug", *slug)
		}
		r.slugs[*slug] = id
	}

	p.Slug = slug
	p.Level = level
	p.RealName = fields.RealName
	if fields.ClubID != nil {
		p.ClubID = fields.ClubID
	}
	if fields.Nickname != nil {
		p.Nickname = fields.Nickname
	}
	if fields.PhoneNumber != nil {
		p.PhoneNumber = fields.PhoneNumber
	}
	if fields.Wechat != nil {
		p.Wechat = fields.Wechat
	}
	if fields.SelfIntro != nil {
		p.SelfIntro = fields.SelfIntro
	}
	if fields.Occupation != nil {
		p.Occupation = fields.Occupation
	}
	if fields.Gender != nil {
		p.Gender = fields.Gender
	}
	if fields.Field != nil {
		p.Field = fields.Field
	}
	if fields.Status != nil {
		p.Status = fields.Status
	}
	if fields.Resources != nil {
		p.Resources = fields.Resources
	}
	if fields.HelpNeeded != nil {
		p.HelpNeeded = fields.HelpNeeded
	}

	if projects != nil {
		r.projects[id] = append([]profile.Project(nil), projects...)
	}
	if links != nil {
		r.links[id] = append([]profile.SocialLink(nil), links...)
	}
	return nil
}

func (r *fakeProfileRepo) hydrate(p *profile.UserProfile) *profile.UserProfile {
	copied := *p
	copied.Projects = append([]profile.Project(nil), r.projects[p.ID]...)
	copied.SocialLinks = append([]profile.SocialLink(nil), r.links[p.ID]...)
	return &copied
}

type fakeClubRepo struct {
	clubs map[uuid.UUID]*clubdomain.Club
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{clubs: map[uuid.UUID]*clubdomain.Club{}}
}

func (r *fakeClubRepo) FindByID(ctx context.Context, id uuid.UUID) (*clubdomain.Club, error) {
	c, ok := r.clubs[id]
	if !ok {
		return nil, apperror.NewNotFound("club", id.String())
	}
	return c, nil
}

func (r *fakeClubRepo) List(ctx context.Context, limit, offset int) ([]*clubdomain.Club, error) {
	out := make([]*clubdomain.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		out = append(out, c)
	}
	return out, nil
}

type fakeRegistrationRepo struct {
	counts map[uuid.UUID]int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{counts: map[uuid.UUID]int{}}
}

func (r *fakeRegistrationRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.counts[userID], nil
}

type fakeProfileCache struct {
	mu          sync.Mutex
	entries     map[string]*profile.UserProfile
	invalidated []string
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{entries: map[string]*profile.UserProfile{}}
}

func (c *fakeProfileCache) GetBySlug(ctx context.Context, slug string) (*profile.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[slug], nil
}

func (c *fakeProfileCache) SetBySlug(ctx context.Context, p *profile.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p != nil && p.Slug != nil {
		c.entries[*p.Slug] = p
	}
	return nil
}

func (c *fakeProfileCache) Invalidate(ctx context.Context, slug string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, slug)
	c.invalidated = append(c.invalidated, slug)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads []event.ProfileEventPayload
}

func (p *fakePublisher) PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) published() []event.ProfileEventPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.ProfileEventPayload(nil), p.payloads...)
}
