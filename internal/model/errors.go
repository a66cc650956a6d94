package model

import "errors"

var (
	// ErrQuizNotFound is returned when the requested quiz does not exist or is unpublished.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a question id in the attempt's order no longer exists
	// in the catalog.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAttemptNotFound is returned when no attempt exists for the user/quiz or id.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrQuestionNotInAttempt indicates a submitted question is not part of the
	// attempt's question order.
	ErrQuestionNotInAttempt = errors.New("question does not belong to this attempt")
	// ErrChoiceMismatch indicates a submitted choice does not belong to the question.
	ErrChoiceMismatch = errors.New("choice does not belong to this question")
	// ErrAttemptFinished is returned when answers are submitted after finalize.
	ErrAttemptFinished = errors.New("attempt is already finished")
)
