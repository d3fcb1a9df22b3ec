package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	clubUC "github.com/Jackiexiao/hackclub/internal/application/usecase/club"
	"github.com/Jackiexiao/hackclub/pkg/logger"
)

type ClubHandler struct {
	listClubsUseCase *clubUC.ListClubsUseCase
	logger           logger.Logger
}

func NewClubHandler(listUC *clubUC.ListClubsUseCase, log logger.Logger) *ClubHandler {
	return &ClubHandler{
		listClubsUseCase: listUC,
		logger:           log,
	}
}

func (h *ClubHandler) ListClubs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	output, err := h.listClubsUseCase.Execute(c.Request.Context(), clubUC.ListClubsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]*ClubDTO, len(output.Clubs))
	for i, cl := range output.Clubs {
		dtos[i] = ToClubDTO(cl)
	}
	c.JSON(http.StatusOK, gin.H{"clubs": dtos})
}
