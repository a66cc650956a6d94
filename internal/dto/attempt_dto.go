package dto

import "time"

// AttemptDTO summarizes a user's attempt at a quiz.
type AttemptDTO struct {
	ID              uint       `json:"id"`
	QuizID          uint       `json:"quiz_id"`
	UserID          uint       `json:"user_id"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	Score           *float64   `json:"score,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	TotalQuestions  int        `json:"total_questions"`
}

// CurrentQuestionDTO is one step of the question-by-question flow. When Finished is
// true the remaining fields are zero-valued except Total.
type CurrentQuestionDTO struct {
	Finished         bool        `json:"finished"`
	Index            int         `json:"index"`
	Total            int         `json:"total"`
	QuestionID       uint        `json:"question_id,omitempty"`
	Question         string      `json:"question,omitempty"`
	Choices          []ChoiceDTO `json:"choices,omitempty"`
	TimeLimitSeconds int         `json:"time_limit,omitempty"`
}

// SubmitAnswerRequest carries one answer. A nil ChoiceID records the question as
// answered incorrectly (timeout / explicit skip).
type SubmitAnswerRequest struct {
	QuestionID uint  `json:"question_id" binding:"required"`
	ChoiceID   *uint `json:"choice_id"`
	TimeTaken  *int  `json:"time_taken"`
}

type SubmitAnswerResponse struct {
	Correct bool `json:"correct"`
}

type FinishAttemptResponse struct {
	Score           float64 `json:"score"`
	DurationSeconds int     `json:"duration_seconds"`
}

// ResultEntryDTO is one row of the per-question results breakdown.
type ResultEntryDTO struct {
	QuestionText      string `json:"question"`
	SelectedText      string `json:"selected"`
	CorrectAnswerText string `json:"correct_answer"`
	Correct           bool   `json:"correct"`
}

// ResultsDTO is the results screen: correct count over total plus the breakdown.
type ResultsDTO struct {
	QuizID      uint             `json:"quiz_id"`
	AttemptID   uint             `json:"attempt_id"`
	Score       int              `json:"score"` // number of correct answers
	Total       int              `json:"total"`
	FinalScore  *float64         `json:"final_score,omitempty"` // percentage, present once finalized
	PerQuestion []ResultEntryDTO `json:"per_question"`
}
