package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/Jackiexiao/hackclub/internal/application/usecase/profile"
	"github.com/Jackiexiao/hackclub/pkg/apperror"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

type ProfileHandler struct {
	getProfileUseCase    *profileUC.GetProfileUseCase
	getByUsernameUseCase *profileUC.GetByUsernameUseCase
	updateProfileUseCase *profileUC.UpdateProfileUseCase
	logger               logger.Logger
}

func NewProfileHandler(
	getUC *profileUC.GetProfileUseCase,
	getByUsernameUC *profileUC.GetByUsernameUseCase,
	updateUC *profileUC.UpdateProfileUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileUseCase:    getUC,
		getByUsernameUseCase: getByUsernameUC,
		updateProfileUseCase: updateUC,
		logger:               log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	input := profileUC.GetProfileInput{UserID: userID}
	output, err := h.getProfileUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	if output.Profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// GetByUsername is the public profile view; no auth required.
func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	username := c.Param("username")

	input := profileUC.GetByUsernameInput{Username: username}
	output, err := h.getByUsernameUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	if output.Profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	output, err := h.updateProfileUseCase.Execute(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}
