package club

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/Jackiexiao/hackclub/internal/domain/club"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

var tracer = otel.Tracer("club_usecase")

const defaultPageSize = 50

type ListClubsUseCase struct {
	clubRepo club.Repository
	logger   logger.Logger
}

func NewListClubsUseCase(repo club.Repository, log logger.Logger) *ListClubsUseCase {
	return &ListClubsUseCase{
		clubRepo: repo,
		logger:   log,
	}
}

type ListClubsInput struct {
	Limit  int
	Offset int
}

type ListClubsOutput struct {
	Clubs []*club.Club
}

func (uc *ListClubsUseCase) Execute(ctx context.Context, input ListClubsInput) (*ListClubsOutput, error) {
	ctx, span := tracer.Start(ctx, "ListClubs")
	defer span.End()

	if input.Limit <= 0 || input.Limit > defaultPageSize {
		input.Limit = defaultPageSize
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	clubs, err := uc.clubRepo.List(ctx, input.Limit, input.Offset)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &ListClubsOutput{Clubs: clubs}, nil
}
