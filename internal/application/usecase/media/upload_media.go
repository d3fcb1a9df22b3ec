package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/Jackiexiao/hackclub/internal/application/service"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

var tracer = otel.Tracer("media_usecase")

// UploadMediaUseCase pushes an image to the hosting provider and hands the
// resulting URL back; clients store it in project imageUrl fields.
type UploadMediaUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadMediaUseCase(u service.Uploader, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{uploader: u, logger: log}
}

type UploadMediaInput struct {
	UserID uuid.UUID
	File   io.Reader
}

type UploadMediaOutput struct {
	URL string
}

func (uc *UploadMediaUseCase) Execute(ctx context.Context, input UploadMediaInput) (*UploadMediaOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadMedia")
	defer span.End()

	folder := fmt.Sprintf("users/%s/media", input.UserID.String())
	publicID := uuid.New().String()

	url, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload media file", err)
	}

	return &UploadMediaOutput{URL: url}, nil
}
