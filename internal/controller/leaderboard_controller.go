package controller

import (
	"net/http"
	"strconv"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const defaultLeaderboardLimit = 10

type LeaderboardController struct {
	leaderboardService service.LeaderboardService
}

func NewLeaderboardController(leaderboardService service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary Get the leaderboard for a quiz
// @Description Finished attempts ranked by score descending; ties go to the earlier finish. Defaults to the top 10.
// @Tags Leaderboard
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param limit query int false "Maximum number of entries" default(10)
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Quiz ID or limit format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	quizID, err := parseUintParam(ctx, "quiz_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quiz ID format"})
		return
	}

	limit := defaultLeaderboardLimit
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit"})
			return
		}
	}

	entries, err := c.leaderboardService.Rank(quizID, limit)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("GetLeaderboard: Service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}
