package controller

import (
	"net/http"
	"strconv"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
	answerService  service.AnswerService
	scoringService service.ScoringService
}

func NewAttemptController(
	attemptService service.AttemptService,
	answerService service.AnswerService,
	scoringService service.ScoringService,
) *AttemptController {
	return &AttemptController{
		attemptService: attemptService,
		answerService:  answerService,
		scoringService: scoringService,
	}
}

// StartAttempt godoc
// @Summary Start or resume an attempt
// @Description Get or create the user's attempt for a quiz. The question order is fixed the first time and reused on every later call.
// @Tags Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param user_id query int true "User ID (from the identity provider)"
// @Success 200 {object} dto.AttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	quizID, err := parseUintParam(ctx, "quiz_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quiz ID format"})
		return
	}
	userID, err := parseUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id"})
		return
	}

	attempt, err := c.attemptService.GetOrCreateAttempt(userID, quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Uint("userID", userID).Msg("StartAttempt: Service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetQuestion godoc
// @Summary Get the question at a position of the attempt
// @Description Returns the question text, choices and effective time limit for the given index, or finished=true past the last question.
// @Tags Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param user_id query int true "User ID"
// @Param q query int false "Zero-based question index" default(0)
// @Success 200 {object} dto.CurrentQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or index format"
// @Failure 404 {object} dto.ErrorResponse "Attempt or question not found"
// @Router /quizzes/{quiz_id}/attempts/question [get]
func (c *AttemptController) GetQuestion(ctx *gin.Context) {
	quizID, err := parseUintParam(ctx, "quiz_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quiz ID format"})
		return
	}
	userID, err := parseUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id"})
		return
	}
	index, err := strconv.Atoi(ctx.DefaultQuery("q", "0"))
	if err != nil || index < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question index"})
		return
	}

	question, err := c.attemptService.GetQuestion(userID, quizID, index)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Uint("userID", userID).Int("index", index).
			Msg("GetQuestion: Service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// SubmitAnswer godoc
// @Summary Submit an answer for one question
// @Description Records the choice for a question of the attempt. Resubmitting overwrites the previous answer. A missing choice_id records the question as unanswered.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query int true "User ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or choice/question mismatch"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already finished"
// @Router /attempts/{attempt_id}/answers [post]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	attemptID, err := parseUintParam(ctx, "attempt_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}
	userID, err := parseUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id"})
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.answerService.RecordAnswer(userID, attemptID, req)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Uint("questionID", req.QuestionID).
			Msg("SubmitAnswer: Service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// FinishAttempt godoc
// @Summary Finish an attempt
// @Description Computes and freezes the attempt's score and duration. Idempotent: repeat calls return the stored values.
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.FinishAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/finish [post]
func (c *AttemptController) FinishAttempt(ctx *gin.Context) {
	attemptID, err := parseUintParam(ctx, "attempt_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}
	userID, err := parseUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id"})
		return
	}

	result, err := c.scoringService.Finalize(userID, attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Uint("userID", userID).
			Msg("FinishAttempt: Service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetResults godoc
// @Summary Get the results breakdown for a quiz
// @Description Per-question breakdown of the user's attempt: selected choice, correct choice and correctness, plus the correct count.
// @Tags Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.ResultsDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz or attempt not found"
// @Router /quizzes/{quiz_id}/results [get]
func (c *AttemptController) GetResults(ctx *gin.Context) {
	quizID, err := parseUintParam(ctx, "quiz_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quiz ID format"})
		return
	}
	userID, err := parseUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id"})
		return
	}

	results, err := c.scoringService.GetResults(userID, quizID)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Uint("userID", userID).Msg("GetResults: Service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}
