package controller

import (
	"errors"
	"net/http"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/model"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP statuses: missing entities are 404,
// relationship violations are 400, answering a finalized attempt is 409. Anything
// unrecognized is a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrQuizNotFound),
		errors.Is(err, model.ErrQuestionNotFound),
		errors.Is(err, model.ErrAttemptNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrChoiceMismatch),
		errors.Is(err, model.ErrQuestionNotInAttempt):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrAttemptFinished):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}
