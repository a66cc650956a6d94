package service

import (
	"errors"
	"time"

	"github.com/eduquest/eduquest/internal/model"
	"github.com/eduquest/eduquest/internal/repository"
	"gorm.io/datatypes"
)

// Mock repositories

type mockQuizRepository struct {
	findPublishedWithQuestionCountFunc func() ([]repository.QuizWithQuestionCount, error)
	findByIDFunc                       func(id uint) (*model.Quiz, error)
	findByIDWithQuestionsFunc          func(id uint) (*model.Quiz, error)
	findBySlugFunc                     func(slug string) (*model.Quiz, error)
}

func (m *mockQuizRepository) FindPublishedWithQuestionCount() ([]repository.QuizWithQuestionCount, error) {
	if m.findPublishedWithQuestionCountFunc != nil {
		return m.findPublishedWithQuestionCountFunc()
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuizRepository) FindByID(id uint) (*model.Quiz, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	if m.findByIDWithQuestionsFunc != nil {
		return m.findByIDWithQuestionsFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuizRepository) FindBySlug(slug string) (*model.Quiz, error) {
	if m.findBySlugFunc != nil {
		return m.findBySlugFunc(slug)
	}
	return nil, errors.New("not implemented")
}

type mockCategoryRepository struct {
	findAllWithQuizCountFunc func() ([]repository.CategoryWithQuizCount, error)
}

func (m *mockCategoryRepository) FindAllWithQuizCount() ([]repository.CategoryWithQuizCount, error) {
	if m.findAllWithQuizCountFunc != nil {
		return m.findAllWithQuizCountFunc()
	}
	return nil, errors.New("not implemented")
}

type mockQuestionRepository struct {
	findByIDWithChoicesFunc func(id uint) (*model.Question, error)
	findIDsByQuizIDFunc     func(quizID uint) ([]uint, error)
	findChoiceFunc          func(choiceID, questionID uint) (*model.Choice, error)
}

func (m *mockQuestionRepository) FindByIDWithChoices(id uint) (*model.Question, error) {
	if m.findByIDWithChoicesFunc != nil {
		return m.findByIDWithChoicesFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) FindIDsByQuizID(quizID uint) ([]uint, error) {
	if m.findIDsByQuizIDFunc != nil {
		return m.findIDsByQuizIDFunc(quizID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) FindChoice(choiceID, questionID uint) (*model.Choice, error) {
	if m.findChoiceFunc != nil {
		return m.findChoiceFunc(choiceID, questionID)
	}
	return nil, errors.New("not implemented")
}

type mockAttemptRepository struct {
	createWithQuestionAttemptsFunc func(attempt *model.QuizAttempt) error
	findByUserAndQuizFunc          func(userID, quizID uint) (*model.QuizAttempt, error)
	findByIDAndUserFunc            func(id, userID uint) (*model.QuizAttempt, error)
	updateQuestionOrderIfEmptyFunc func(id uint, order datatypes.JSONSlice[uint]) (bool, error)
	ensureQuestionAttemptsFunc     func(attemptID uint, order []uint) error
	finalizeIfUnfinishedFunc       func(id uint, score float64, finishedAt time.Time, durationSeconds int) (bool, error)
	findFinishedByQuizFunc         func(quizID uint) ([]model.QuizAttempt, error)
}

func (m *mockAttemptRepository) CreateWithQuestionAttempts(attempt *model.QuizAttempt) error {
	if m.createWithQuestionAttemptsFunc != nil {
		return m.createWithQuestionAttemptsFunc(attempt)
	}
	return errors.New("not implemented")
}

func (m *mockAttemptRepository) FindByUserAndQuiz(userID, quizID uint) (*model.QuizAttempt, error) {
	if m.findByUserAndQuizFunc != nil {
		return m.findByUserAndQuizFunc(userID, quizID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAttemptRepository) FindByIDAndUser(id, userID uint) (*model.QuizAttempt, error) {
	if m.findByIDAndUserFunc != nil {
		return m.findByIDAndUserFunc(id, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAttemptRepository) UpdateQuestionOrderIfEmpty(id uint, order datatypes.JSONSlice[uint]) (bool, error) {
	if m.updateQuestionOrderIfEmptyFunc != nil {
		return m.updateQuestionOrderIfEmptyFunc(id, order)
	}
	return false, errors.New("not implemented")
}

func (m *mockAttemptRepository) EnsureQuestionAttempts(attemptID uint, order []uint) error {
	if m.ensureQuestionAttemptsFunc != nil {
		return m.ensureQuestionAttemptsFunc(attemptID, order)
	}
	return errors.New("not implemented")
}

func (m *mockAttemptRepository) FinalizeIfUnfinished(id uint, score float64, finishedAt time.Time, durationSeconds int) (bool, error) {
	if m.finalizeIfUnfinishedFunc != nil {
		return m.finalizeIfUnfinishedFunc(id, score, finishedAt, durationSeconds)
	}
	return false, errors.New("not implemented")
}

func (m *mockAttemptRepository) FindFinishedByQuiz(quizID uint) ([]model.QuizAttempt, error) {
	if m.findFinishedByQuizFunc != nil {
		return m.findFinishedByQuizFunc(quizID)
	}
	return nil, errors.New("not implemented")
}

type mockQuestionAttemptRepository struct {
	recordAnswerFunc          func(attemptID, questionID uint, detail model.AnswerDetail, answeredAt time.Time) error
	findByAttemptIDFunc       func(attemptID uint) ([]model.QuestionAttempt, error)
	countByAttemptFunc        func(attemptID uint) (int64, error)
	countCorrectByAttemptFunc func(attemptID uint) (int64, error)
}

func (m *mockQuestionAttemptRepository) RecordAnswer(attemptID, questionID uint, detail model.AnswerDetail, answeredAt time.Time) error {
	if m.recordAnswerFunc != nil {
		return m.recordAnswerFunc(attemptID, questionID, detail, answeredAt)
	}
	return errors.New("not implemented")
}

func (m *mockQuestionAttemptRepository) FindByAttemptID(attemptID uint) ([]model.QuestionAttempt, error) {
	if m.findByAttemptIDFunc != nil {
		return m.findByAttemptIDFunc(attemptID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionAttemptRepository) CountByAttempt(attemptID uint) (int64, error) {
	if m.countByAttemptFunc != nil {
		return m.countByAttemptFunc(attemptID)
	}
	return 0, errors.New("not implemented")
}

func (m *mockQuestionAttemptRepository) CountCorrectByAttempt(attemptID uint) (int64, error) {
	if m.countCorrectByAttemptFunc != nil {
		return m.countCorrectByAttemptFunc(attemptID)
	}
	return 0, errors.New("not implemented")
}

// helpers

func uintPtr(v uint) *uint           { return &v }
func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }
