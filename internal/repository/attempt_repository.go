package repository

import (
	"errors"
	"time"

	"github.com/eduquest/eduquest/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	CreateWithQuestionAttempts(attempt *model.QuizAttempt) error
	FindByUserAndQuiz(userID, quizID uint) (*model.QuizAttempt, error)
	FindByIDAndUser(id, userID uint) (*model.QuizAttempt, error)
	UpdateQuestionOrderIfEmpty(id uint, order datatypes.JSONSlice[uint]) (bool, error)
	EnsureQuestionAttempts(attemptID uint, order []uint) error
	FinalizeIfUnfinished(id uint, score float64, finishedAt time.Time, durationSeconds int) (bool, error)
	FindFinishedByQuiz(quizID uint) ([]model.QuizAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// CreateWithQuestionAttempts inserts the attempt and one question-attempt row per
// question of its order in a single transaction. The unique index on
// (user_id, quiz_id) rejects a concurrent duplicate; callers recover by re-reading
// the winner's row.
func (r *attemptRepository) CreateWithQuestionAttempts(attempt *model.QuizAttempt) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		return createQuestionAttempts(tx, attempt.ID, attempt.QuestionOrder)
	})
}

func (r *attemptRepository) FindByUserAndQuiz(userID, quizID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.Preload("Quiz").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAttemptNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDAndUser(id, userID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.Preload("Quiz").
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAttemptNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// UpdateQuestionOrderIfEmpty is the one-time repair for attempts persisted without an
// order. The WHERE guard keeps the order write-once: a concurrent repair loses and
// reports false.
func (r *attemptRepository) UpdateQuestionOrderIfEmpty(id uint, order datatypes.JSONSlice[uint]) (bool, error) {
	res := r.db.Model(&model.QuizAttempt{}).
		Where("id = ? AND (question_order IS NULL OR question_order = 'null'::jsonb OR question_order = '[]'::jsonb)", id).
		Update("question_order", order)
	return res.RowsAffected > 0, res.Error
}

// EnsureQuestionAttempts backfills missing question-attempt rows for the given order,
// leaving existing rows untouched.
func (r *attemptRepository) EnsureQuestionAttempts(attemptID uint, order []uint) error {
	return createQuestionAttempts(r.db, attemptID, order)
}

// FinalizeIfUnfinished sets score, finished_at and duration in one conditional update.
// Returns false when another finalize already won; the caller then reads the stored
// values instead.
func (r *attemptRepository) FinalizeIfUnfinished(id uint, score float64, finishedAt time.Time, durationSeconds int) (bool, error) {
	res := r.db.Model(&model.QuizAttempt{}).
		Where("id = ? AND finished_at IS NULL", id).
		Updates(map[string]interface{}{
			"score":            score,
			"finished_at":      finishedAt,
			"duration_seconds": durationSeconds,
		})
	return res.RowsAffected > 0, res.Error
}

// FindFinishedByQuiz returns every finalized attempt for the quiz. Ranking and limits
// belong to the leaderboard service.
func (r *attemptRepository) FindFinishedByQuiz(quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.
		Where("quiz_id = ? AND finished_at IS NOT NULL", quizID).
		Find(&attempts).Error
	return attempts, err
}

// createQuestionAttempts pre-creates one row per question in the order, so skipped
// questions still count against the score.
func createQuestionAttempts(tx *gorm.DB, attemptID uint, order []uint) error {
	if len(order) == 0 {
		return nil
	}
	rows := make([]model.QuestionAttempt, 0, len(order))
	for _, questionID := range order {
		rows = append(rows, model.QuestionAttempt{AttemptID: attemptID, QuestionID: questionID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
