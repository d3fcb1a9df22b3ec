package profile

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Jackiexiao/hackclub/internal/application/service"
	"github.com/Jackiexiao/hackclub/internal/domain/profile"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

type GetByUsernameUseCase struct {
	profileRepo profile.Repository
	cache       service.ProfileCache
	logger      logger.Logger
}

func NewGetByUsernameUseCase(repo profile.Repository, cache service.ProfileCache, log logger.Logger) *GetByUsernameUseCase {
	return &GetByUsernameUseCase{
		profileRepo: repo,
		cache:       cache,
		logger:      log,
	}
}

type GetByUsernameInput struct {
	Username string
}

type GetByUsernameOutput struct {
	Profile *profile.UserProfile
}

func (uc *GetByUsernameUseCase) Execute(ctx context.Context, input GetByUsernameInput) (*GetByUsernameOutput, error) {
	ctx, span := tracer.Start(ctx, "GetByUsername")
	defer span.End()
	span.SetAttributes(attribute.String("username", input.Username))

	if uc.cache != nil {
		cached, err := uc.cache.GetBySlug(ctx, input.Username)
		if err != nil {
			uc.logger.Warn("profile cache read failed", zap.String("slug", input.Username), zap.Error(err))
		} else if cached != nil {
			return &GetByUsernameOutput{Profile: cached}, nil
		}
	}

	p, err := uc.profileRepo.FindBySlug(ctx, input.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return &GetByUsernameOutput{Profile: nil}, nil
		}
		span.RecordError(err)
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetBySlug(ctx, p); err != nil {
			uc.logger.Warn("profile cache write failed", zap.String("slug", input.Username), zap.Error(err))
		}
	}

	return &GetByUsernameOutput{Profile: p}, nil
}
