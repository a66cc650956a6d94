package model

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerDetail is the per-question entry of the attempt's denormalized answers cache.
// The authoritative record is the QuestionAttempt row; the cache is written in the same
// transaction and keeps the raw attempt row a self-contained snapshot of its answers.
type AnswerDetail struct {
	ChoiceID  *uint `json:"choice_id"`
	Correct   bool  `json:"correct"`
	TimeTaken *int  `json:"time_taken"`
}

// AnswersCache maps question IDs (as decimal strings, matching the JSONB keys) to the
// latest answer recorded for that question.
type AnswersCache map[string]AnswerDetail

// QuizAttempt is a single user's pass through a quiz. One row exists per (user, quiz);
// the unique index closes the duplicate-creation race at the storage layer.
type QuizAttempt struct {
	ID               uint                             `gorm:"primarykey" json:"id"`
	UserID           uint                             `json:"user_id" gorm:"not null;uniqueIndex:idx_quiz_attempts_user_quiz"`
	QuizID           uint                             `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_attempts_user_quiz"`
	Quiz             Quiz                             `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	StartedAt        time.Time                        `json:"started_at" gorm:"autoCreateTime"`
	FinishedAt       *time.Time                       `json:"finished_at,omitempty"`
	Score            *float64                         `json:"score,omitempty"` // 0-100, two decimals, set once at finalize
	DurationSeconds  *int                             `json:"duration_seconds,omitempty"`
	QuestionOrder    datatypes.JSONSlice[uint]        `json:"question_order" gorm:"type:jsonb"`
	Answers          datatypes.JSONType[AnswersCache] `json:"answers" gorm:"type:jsonb"`
	QuestionAttempts []QuestionAttempt                `json:"question_attempts,omitempty" gorm:"foreignKey:AttemptID"`
	CreatedAt        time.Time                        `json:"created_at"`
	UpdatedAt        time.Time                        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt                   `gorm:"index" json:"-"`
}

// Finished reports whether the attempt has been finalized.
func (a *QuizAttempt) Finished() bool {
	return a.FinishedAt != nil
}

// AnswerKey is the JSONB key under which a question's answer is cached.
func AnswerKey(questionID uint) string {
	return strconv.FormatUint(uint64(questionID), 10)
}
