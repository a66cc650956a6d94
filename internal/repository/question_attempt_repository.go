package repository

import (
	"time"

	"github.com/eduquest/eduquest/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionAttemptRepository interface {
	RecordAnswer(attemptID, questionID uint, detail model.AnswerDetail, answeredAt time.Time) error
	FindByAttemptID(attemptID uint) ([]model.QuestionAttempt, error)
	CountByAttempt(attemptID uint) (int64, error)
	CountCorrectByAttempt(attemptID uint) (int64, error)
}

type questionAttemptRepository struct {
	db *gorm.DB
}

func NewQuestionAttemptRepository(db *gorm.DB) QuestionAttemptRepository {
	return &questionAttemptRepository{db: db}
}

// RecordAnswer overwrites the question's row and the attempt's answers cache in one
// transaction, so the two representations cannot diverge. The attempt row is locked
// first: answer writes for the same attempt serialize, and a finalize that committed
// in between is honored.
func (r *questionAttemptRepository) RecordAnswer(attemptID, questionID uint, detail model.AnswerDetail, answeredAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var attempt model.QuizAttempt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&attempt, attemptID).Error; err != nil {
			return err
		}
		if attempt.FinishedAt != nil {
			return model.ErrAttemptFinished
		}

		res := tx.Model(&model.QuestionAttempt{}).
			Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
			Updates(map[string]interface{}{
				"choice_id":   detail.ChoiceID,
				"correct":     detail.Correct,
				"time_taken":  detail.TimeTaken,
				"answered_at": answeredAt,
			})
		if res.Error != nil {
			return res.Error
		}
		// Rows exist for every question in the attempt's order, so zero updates
		// means the question is not part of this attempt.
		if res.RowsAffected == 0 {
			return model.ErrQuestionNotInAttempt
		}

		cache := attempt.Answers.Data()
		if cache == nil {
			cache = model.AnswersCache{}
		}
		cache[model.AnswerKey(questionID)] = detail
		return tx.Model(&model.QuizAttempt{}).
			Where("id = ?", attemptID).
			Update("answers", datatypes.NewJSONType(cache)).Error
	})
}

func (r *questionAttemptRepository) FindByAttemptID(attemptID uint) ([]model.QuestionAttempt, error) {
	var rows []model.QuestionAttempt
	err := r.db.Where("attempt_id = ?", attemptID).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *questionAttemptRepository) CountByAttempt(attemptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuestionAttempt{}).
		Where("attempt_id = ?", attemptID).
		Count(&count).Error
	return count, err
}

func (r *questionAttemptRepository) CountCorrectByAttempt(attemptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuestionAttempt{}).
		Where("attempt_id = ? AND correct = ?", attemptID, true).
		Count(&count).Error
	return count, err
}
