package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/Jackiexiao/hackclub/internal/application/usecase/media"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

const maxUploadSize = 10 << 20 // 10 MiB

type MediaHandler struct {
	uploadMediaUseCase *mediaUC.UploadMediaUseCase
	logger             logger.Logger
}

func NewMediaHandler(uploadUC *mediaUC.UploadMediaUseCase, log logger.Logger) *MediaHandler {
	return &MediaHandler{
		uploadMediaUseCase: uploadUC,
		logger:             log,
	}
}

func (h *MediaHandler) UploadMedia(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("missing 'file' form field", err))
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.Error(apperror.NewInvalidInput("file exceeds the 10MB limit", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadMediaUseCase.Execute(c.Request.Context(), mediaUC.UploadMediaInput{
		UserID: userID,
		File:   file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": output.URL})
}
