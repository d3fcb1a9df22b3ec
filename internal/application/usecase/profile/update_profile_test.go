package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clubdomain "github.com/Jackiexiao/hackclub/internal/domain/club"
	"github.com/Jackiexiao/hackclub/internal/domain/profile"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

type updateTestEnv struct {
	repo      *fakeProfileRepo
	clubs     *fakeClubRepo
	regs      *fakeRegistrationRepo
	cache     *fakeProfileCache
	publisher *fakePublisher
	uc        *UpdateProfileUseCase
}

func newUpdateTestEnv() *updateTestEnv {
	env := &updateTestEnv{
		repo:      newFakeProfileRepo(),
		clubs:     newFakeClubRepo(),
		regs:      newFakeRegistrationRepo(),
		cache:     newFakeProfileCache(),
		publisher: &fakePublisher{},
	}
	env.uc = NewUpdateProfileUseCase(env.repo, env.clubs, env.regs, env.cache, env.publisher, logger.NewZapLogger("development"))
	return env
}

func (env *updateTestEnv) seedUser(realName string, slug *string) *profile.UserProfile {
	p := &profile.UserProfile{
		ID:       uuid.New(),
		Email:    uuid.New().String() + "@example.com",
		RealName: realName,
		Slug:     slug,
	}
	env.repo.addProfile(p)
	return p
}

func strPtr(s string) *string { return &s }

func TestUpdate_FirstUpdateAssignsSlug(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("", nil)

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
	})

	require.NoError(t, err)
	require.NotNil(t, out.Profile.Slug)
	assert.Equal(t, "janedoe", *out.Profile.Slug)
	assert.True(t, profile.ValidSlug(*out.Profile.Slug))
}

func TestUpdate_CollidingBaseGetsNumericSuffix(t *testing.T) {
	env := newUpdateTestEnv()

	first := env.seedUser("", nil)
	second := env.seedUser("", nil)

	out1, err := env.uc.Execute(context.Background(), UpdateProfileInput{UserID: first.ID, RealName: "Jane Doe"})
	require.NoError(t, err)
	out2, err := env.uc.Execute(context.Background(), UpdateProfileInput{UserID: second.ID, RealName: "Jane-Doe!"})
	require.NoError(t, err)

	assert.Equal(t, "janedoe", *out1.Profile.Slug)
	assert.Equal(t, "janedoe1", *out2.Profile.Slug)
}

func TestUpdate_SlugIsImmutableOnceAssigned(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{UserID: u.ID, RealName: "Completely Different"})
	require.NoError(t, err)
	assert.Equal(t, "janedoe", *out.Profile.Slug)

	out, err = env.uc.Execute(context.Background(), UpdateProfileInput{UserID: u.ID, RealName: "Another Name"})
	require.NoError(t, err)
	assert.Equal(t, "janedoe", *out.Profile.Slug)
}

func TestUpdate_UnstrippableNameFallsBackToIDSlug(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("", nil)

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{UserID: u.ID, RealName: "张伟"})

	require.NoError(t, err)
	require.NotNil(t, out.Profile.Slug)
	assert.Equal(t, profile.FallbackSlug(u.ID), *out.Profile.Slug)
}

func TestUpdate_LevelRecomputedFromCounts(t *testing.T) {
	cases := []struct {
		name          string
		registrations int
		projects      int
		want          int
	}{
		{"nothing", 0, 0, 0},
		{"three registrations", 3, 0, 1},
		{"one project", 0, 1, 2},
		{"both", 5, 2, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newUpdateTestEnv()
			u := env.seedUser("", nil)
			env.regs.counts[u.ID] = tc.registrations
			for i := 0; i < tc.projects; i++ {
				env.repo.projects[u.ID] = append(env.repo.projects[u.ID], profile.Project{ID: uuid.New(), UserID: u.ID, Name: "p"})
			}

			out, err := env.uc.Execute(context.Background(), UpdateProfileInput{UserID: u.ID, RealName: "Jane Doe"})

			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Profile.Level)
		})
	}
}

func TestUpdate_EmptyProjectListClearsCollection(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))
	env.repo.projects[u.ID] = []profile.Project{
		{ID: uuid.New(), UserID: u.ID, Name: "old"},
		{ID: uuid.New(), UserID: u.ID, Name: "older"},
	}

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
		Projects: []ProjectInput{},
	})

	require.NoError(t, err)
	assert.Empty(t, out.Profile.Projects)
}

func TestUpdate_AbsentProjectListLeavesCollectionUntouched(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))
	existing := profile.Project{ID: uuid.New(), UserID: u.ID, Name: "keep me"}
	env.repo.projects[u.ID] = []profile.Project{existing}

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
	})

	require.NoError(t, err)
	require.Len(t, out.Profile.Projects, 1)
	assert.Equal(t, existing.ID, out.Profile.Projects[0].ID)
}

func TestUpdate_ReplacedProjectsGetFreshIdentities(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))
	oldID := uuid.New()
	env.repo.projects[u.ID] = []profile.Project{{ID: oldID, UserID: u.ID, Name: "same name"}}

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
		Projects: []ProjectInput{{Name: "same name", Description: "unchanged content"}},
	})

	require.NoError(t, err)
	require.Len(t, out.Profile.Projects, 1)
	assert.NotEqual(t, oldID, out.Profile.Projects[0].ID)
}

func TestUpdate_SocialLinksReplacedWholesale(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))
	env.repo.links[u.ID] = []profile.SocialLink{
		{ID: uuid.New(), UserID: u.ID, Platform: profile.PlatformTwitter, URL: "https://twitter.com/old"},
	}

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
		SocialLinks: []SocialLinkInput{
			{Platform: "github", URL: "https://github.com/janedoe"},
		},
	})

	require.NoError(t, err)
	require.Len(t, out.Profile.SocialLinks, 1)
	assert.Equal(t, profile.PlatformGithub, out.Profile.SocialLinks[0].Platform)
}

func TestUpdate_InvalidProjectURLRejectedBeforeAnyWrite(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))

	_, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
		Projects: []ProjectInput{{Name: "p", Description: "d", ProjectURL: strPtr("not-a-url")}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Zero(t, env.repo.updateCalls)
}

func TestUpdate_MissingRealNameRejected(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))

	_, err := env.uc.Execute(context.Background(), UpdateProfileInput{UserID: u.ID})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Zero(t, env.repo.updateCalls)
}

func TestUpdate_UnknownEnumValueRejected(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))
	badGender := profile.Gender("ROBOT")

	_, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
		Gender:   &badGender,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpdate_UnknownClubRejected(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))
	missing := uuid.New()

	_, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
		ClubID:   &missing,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpdate_KnownClubAccepted(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))
	c := &clubdomain.Club{ID: uuid.New(), Name: "Shanghai Hackers"}
	env.clubs.clubs[c.ID] = c

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{
		UserID:   u.ID,
		RealName: "Jane Doe",
		ClubID:   &c.ID,
	})

	require.NoError(t, err)
	require.NotNil(t, out.Profile.ClubID)
	assert.Equal(t, c.ID, *out.Profile.ClubID)
}

func TestUpdate_SlugWriteConflictIsRetriedNotSurfaced(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("", nil)
	// A concurrent first-time update claims "janedoe" between our probe and
	// our write.
	env.repo.takenAtWrite["janedoe"] = true

	out, err := env.uc.Execute(context.Background(), UpdateProfileInput{UserID: u.ID, RealName: "Jane Doe"})

	require.NoError(t, err)
	assert.Equal(t, "janedoe1", *out.Profile.Slug)
	assert.Equal(t, 2, env.repo.updateCalls)
}

func TestUpdate_InvalidatesCacheAndPublishesEvent(t *testing.T) {
	env := newUpdateTestEnv()
	u := env.seedUser("Jane Doe", strPtr("janedoe"))

	_, err := env.uc.Execute(context.Background(), UpdateProfileInput{UserID: u.ID, RealName: "Jane Doe"})
	require.NoError(t, err)

	assert.Contains(t, env.cache.invalidated, "janedoe")
	assert.Eventually(t, func() bool {
		for _, p := range env.publisher.published() {
			if p.UserID == u.ID && p.Slug == "janedoe" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}
