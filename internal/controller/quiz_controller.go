package controller

import (
	"net/http"
	"strconv"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// GetCategories godoc
// @Summary List quiz categories
// @Description Get all categories with the number of published quizzes in each.
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.CategorySummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (c *QuizController) GetCategories(ctx *gin.Context) {
	categories, err := c.quizService.GetCategories()
	if err != nil {
		log.Error().Err(err).Msg("GetCategories: Service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// GetQuizzes godoc
// @Summary List published quizzes
// @Description Get the published quiz catalog with question counts and timing settings.
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [get]
func (c *QuizController) GetQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetPublishedQuizzes()
	if err != nil {
		log.Error().Err(err).Msg("GetQuizzes: Service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuizDetails godoc
// @Summary Get details of a quiz
// @Description Get a quiz with its questions and choices. Choice correctness is never included.
// @Tags Catalog
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Quiz ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuizDetails(ctx *gin.Context) {
	quizID, err := parseUintParam(ctx, "quiz_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quiz ID format"})
		return
	}
	details, err := c.quizService.GetQuizDetails(quizID)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("GetQuizDetails: Quiz not found or service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// GetQuizDetailsBySlug godoc
// @Summary Get details of a quiz by slug
// @Description Get a quiz addressed by its URL slug, with questions and choices. Choice correctness is never included.
// @Tags Catalog
// @Produce json
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/slug/{slug} [get]
func (c *QuizController) GetQuizDetailsBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")
	details, err := c.quizService.GetQuizDetailsBySlug(slug)
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("GetQuizDetailsBySlug: Quiz not found or service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, details)
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	return uint(val), err
}

// parseUserID reads the explicit user identity from the query string. Identity is
// owned by an external collaborator; it is passed in rather than read from ambient
// request state.
func parseUserID(ctx *gin.Context) (uint, error) {
	val, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	return uint(val), err
}
