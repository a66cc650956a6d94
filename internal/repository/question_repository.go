package repository

import (
	"errors"

	"github.com/eduquest/eduquest/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByIDWithChoices(id uint) (*model.Question, error)
	FindIDsByQuizID(quizID uint) ([]uint, error)
	FindChoice(choiceID, questionID uint) (*model.Choice, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByIDWithChoices(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("choices.id ASC")
	}).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

// FindIDsByQuizID returns the quiz's question ids in catalog order.
func (r *questionRepository) FindIDsByQuizID(quizID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Question{}).
		Where("quiz_id = ?", quizID).
		Order("order_num ASC, id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// FindChoice resolves a choice only if it belongs to the given question.
func (r *questionRepository) FindChoice(choiceID, questionID uint) (*model.Choice, error) {
	var choice model.Choice
	err := r.db.Where("id = ? AND question_id = ?", choiceID, questionID).First(&choice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrChoiceMismatch
		}
		return nil, err
	}
	return &choice, nil
}
