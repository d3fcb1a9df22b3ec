package profile

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Jackiexiao/hackclub/adapters/event"
	"github.com/Jackiexiao/hackclub/internal/application/service"
	clubdomain "github.com/Jackiexiao/hackclub/internal/domain/club"
	eventdomain "github.com/Jackiexiao/hackclub/internal/domain/event"
	"github.com/Jackiexiao/hackclub/internal/domain/profile"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

const (
	// maxSlugProbes caps the linear probe for a free slug candidate.
	maxSlugProbes = 100
	// maxSlugWriteRetries caps re-attempts after the unique index rejects a
	// slug that a concurrent update grabbed between probe and write.
	maxSlugWriteRetries = 3
)

type UpdateProfileUseCase struct {
	profileRepo profile.Repository
	clubRepo    clubdomain.Repository
	regRepo     eventdomain.Repository
	cache       service.ProfileCache
	publisher   event.ProfileEventPublisher
	logger      logger.Logger
}

func NewUpdateProfileUseCase(
	profileRepo profile.Repository,
	clubRepo clubdomain.Repository,
	regRepo eventdomain.Repository,
	cache service.ProfileCache,
	publisher event.ProfileEventPublisher,
	log logger.Logger,
) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		profileRepo: profileRepo,
		clubRepo:    clubRepo,
		regRepo:     regRepo,
		cache:       cache,
		publisher:   publisher,
		logger:      log,
	}
}

type SocialLinkInput struct {
	Platform string
	URL      string
}

type ProjectInput struct {
	Name        string
	Description string
	ImageURL    *string
	ProjectURL  *string
}

// UpdateProfileInput mirrors the update payload. Nil pointers mean "leave
// the stored value alone". For Projects and SocialLinks a nil slice leaves
// the collection untouched while a non-nil empty slice clears it.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	ClubID      *uuid.UUID
	RealName    string
	Nickname    *string
	PhoneNumber *string
	Wechat      *string
	SelfIntro   *string
	Occupation  *string
	Gender      *profile.Gender
	Field       *profile.Field
	Status      *profile.Status
	Resources   *string
	HelpNeeded  *string
	SocialLinks []SocialLinkInput
	Projects    []ProjectInput
}

type UpdateProfileOutput struct {
	Profile *profile.UserProfile
}

func (input UpdateProfileInput) validate() error {
	fields := map[string]string{}

	if input.RealName == "" {
		fields["realName"] = "realName is required"
	}
	if input.Gender != nil && !input.Gender.Valid() {
		fields["gender"] = fmt.Sprintf("unknown gender %q", *input.Gender)
	}
	if input.Field != nil && !input.Field.Valid() {
		fields["field"] = fmt.Sprintf("unknown field %q", *input.Field)
	}
	if input.Status != nil && !input.Status.Valid() {
		fields["status"] = fmt.Sprintf("unknown status %q", *input.Status)
	}
	for i, l := range input.SocialLinks {
		if !profile.Platform(l.Platform).Valid() {
			fields[fmt.Sprintf("socialLinks[%d].platform", i)] = fmt.Sprintf("unknown platform %q", l.Platform)
		}
		if !isAbsoluteURL(l.URL) {
			fields[fmt.Sprintf("socialLinks[%d].url", i)] = "must be a valid URL"
		}
	}
	for i, p := range input.Projects {
		if p.Name == "" {
			fields[fmt.Sprintf("projects[%d].name", i)] = "name is required"
		}
		if p.Description == "" {
			fields[fmt.Sprintf("projects[%d].description", i)] = "description is required"
		}
		if p.ProjectURL != nil && !isAbsoluteURL(*p.ProjectURL) {
			fields[fmt.Sprintf("projects[%d].projectUrl", i)] = "must be a valid URL"
		}
		if p.ImageURL != nil && !isAbsoluteURL(*p.ImageURL) {
			fields[fmt.Sprintf("projects[%d].imageUrl", i)] = "must be a valid URL"
		}
	}

	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.UserID.String()))

	if err := input.validate(); err != nil {
		return nil, err
	}

	current, err := uc.profileRepo.FindByID(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if input.ClubID != nil {
		if _, err := uc.clubRepo.FindByID(ctx, *input.ClubID); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, apperror.NewValidation(map[string]string{"clubId": "club does not exist"})
			}
			span.RecordError(err)
			return nil, err
		}
	}

	// Slug is assigned once and never regenerated afterwards.
	slug := current.Slug
	assigning := false
	if slug == nil && input.RealName != "" {
		candidate, err := uc.probeSlug(ctx, current.ID, input.RealName)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		slug = &candidate
		assigning = true
	}

	registrations, err := uc.regRepo.CountByUser(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	projects, err := uc.profileRepo.CountProjects(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	level := profile.ComputeLevel(registrations, projects)

	fields := profile.UpdateFields{
		ClubID:      input.ClubID,
		RealName:    input.RealName,
		Nickname:    input.Nickname,
		PhoneNumber: input.PhoneNumber,
		Wechat:      input.Wechat,
		SelfIntro:   input.SelfIntro,
		Occupation:  input.Occupation,
		Gender:      input.Gender,
		Field:       input.Field,
		Status:      input.Status,
		Resources:   input.Resources,
		HelpNeeded:  input.HelpNeeded,
	}
	newProjects := toDomainProjects(input.UserID, input.Projects)
	newLinks := toDomainLinks(input.UserID, input.SocialLinks)

	// The probe only guesses a free slug; the unique index is the source of
	// truth. A concurrent first-time update may win the race, in which case
	// the write fails with a conflict and we probe again.
	for attempt := 0; ; attempt++ {
		err = uc.profileRepo.Update(ctx, input.UserID, fields, slug, level, newProjects, newLinks)
		if err == nil {
			break
		}
		if assigning && errors.Is(err, apperror.ErrConflict) && attempt < maxSlugWriteRetries {
			uc.logger.Warn("slug write conflict, probing again",
				zap.String("user_id", input.UserID.String()),
				zap.Stringp("slug", slug),
				zap.Int("attempt", attempt+1))
			candidate, perr := uc.probeSlug(ctx, current.ID, input.RealName)
			if perr != nil {
				span.RecordError(perr)
				return nil, perr
			}
			slug = &candidate
			continue
		}
		span.RecordError(err)
		return nil, err
	}

	updated, err := uc.profileRepo.FindByID(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if uc.cache != nil && updated.Slug != nil {
		if err := uc.cache.Invalidate(ctx, *updated.Slug); err != nil {
			uc.logger.Warn("profile cache invalidation failed", zap.Stringp("slug", updated.Slug), zap.Error(err))
		}
	}

	if uc.publisher != nil {
		payload := event.ProfileEventPayload{
			EventType: event.ProfileEventTypeUpdated,
			UserID:    updated.ID,
			Level:     updated.Level,
		}
		if updated.Slug != nil {
			payload.Slug = *updated.Slug
		}
		go func() {
			if err := uc.publisher.PublishProfileEvent(context.Background(), payload); err != nil {
				uc.logger.Error("failed to publish profile.updated event", err, zap.String("user_id", payload.UserID.String()))
			}
		}()
	}

	return &UpdateProfileOutput{Profile: updated}, nil
}

// probeSlug derives the base candidate from the display name and walks
// base, base1, base2, ... until one is unclaimed. O(k) round trips for k
// collisions; acceptable since this runs once per profile lifetime.
func (uc *UpdateProfileUseCase) probeSlug(ctx context.Context, userID uuid.UUID, realName string) (string, error) {
	base := profile.SlugBase(realName)
	if base == "" {
		base = profile.FallbackSlug(userID)
	}

	candidate := base
	for i := 1; i <= maxSlugProbes; i++ {
		taken, err := uc.profileRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", apperror.NewInternal("failed to probe slug", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", apperror.NewConflict("profile", "slug", base)
}

func toDomainProjects(userID uuid.UUID, in []ProjectInput) []profile.Project {
	if in == nil {
		return nil
	}
	out := make([]profile.Project, len(in))
	for i, p := range in {
		out[i] = profile.Project{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        p.Name,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			ProjectURL:  p.ProjectURL,
		}
	}
	return out
}

func toDomainLinks(userID uuid.UUID, in []SocialLinkInput) []profile.SocialLink {
	if in == nil {
		return nil
	}
	out := make([]profile.SocialLink, len(in))
	for i, l := range in {
		out[i] = profile.SocialLink{
			ID:       uuid.New(),
			UserID:   userID,
			Platform: profile.Platform(l.Platform),
			URL:      l.URL,
		}
	}
	return out
}
