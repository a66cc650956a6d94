package dto

import "time"

// CategorySummaryDTO lists a category with its published quiz count.
type CategorySummaryDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	QuizCount int    `json:"quiz_count"`
}

// QuizSummaryDTO is used for the published quiz listing.
type QuizSummaryDTO struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description,omitempty"`
	CategoryID         *uint     `json:"category_id,omitempty"`
	TimePerQuestion    int       `json:"time_per_question"`
	RandomizeQuestions bool      `json:"randomize_questions"`
	QuestionCount      int       `json:"question_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// ChoiceDTO exposes a choice to the client. Correctness is deliberately absent.
type ChoiceDTO struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionDTO is a question as shown inside a quiz detail.
type QuestionDTO struct {
	ID        uint        `json:"id"`
	Text      string      `json:"text"`
	OrderNum  int         `json:"order"`
	TimeLimit *int        `json:"time_limit,omitempty"`
	Choices   []ChoiceDTO `json:"choices,omitempty"`
}

// QuizDetailDTO is the full quiz view shown before starting an attempt.
type QuizDetailDTO struct {
	ID                 uint          `json:"id"`
	Title              string        `json:"title"`
	Slug               string        `json:"slug"`
	Description        string        `json:"description,omitempty"`
	CategoryID         *uint         `json:"category_id,omitempty"`
	TimePerQuestion    int           `json:"time_per_question"`
	RandomizeQuestions bool          `json:"randomize_questions"`
	Questions          []QuestionDTO `json:"questions,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}
