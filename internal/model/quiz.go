package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Title              string         `json:"title" gorm:"not null"`
	Slug               string         `json:"slug" gorm:"not null;uniqueIndex"`
	Description        string         `json:"description,omitempty" gorm:"type:text"`
	CategoryID         *uint          `json:"category_id,omitempty" gorm:"index"`
	Category           *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	TimePerQuestion    int            `json:"time_per_question" gorm:"not null;default:30"` // seconds
	RandomizeQuestions bool           `json:"randomize_questions" gorm:"not null;default:true"`
	Published          bool           `json:"published" gorm:"not null;default:true"`
	Questions          []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
