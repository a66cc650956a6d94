package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionAttempt is the source of truth for one question's outcome within an attempt.
// Rows are created up front for every question in the attempt's order, so an
// unanswered question is simply a row with a nil choice. Correctness is frozen at
// answer time and never recomputed from the catalog.
type QuestionAttempt struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	AttemptID  uint           `json:"attempt_id" gorm:"not null;uniqueIndex:idx_question_attempts_attempt_question"`
	QuestionID uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_question_attempts_attempt_question"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	ChoiceID   *uint          `json:"choice_id,omitempty"`
	Correct    bool           `json:"correct" gorm:"not null;default:false"`
	TimeTaken  *int           `json:"time_taken,omitempty"` // seconds
	AnsweredAt *time.Time     `json:"answered_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
