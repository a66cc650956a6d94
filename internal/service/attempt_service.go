package service

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/model"
	"github.com/eduquest/eduquest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// AttemptService owns the attempt ledger and the question cursor: it creates the
// per-user per-quiz attempt with its fixed question order, and serves one question at
// a time during the take-quiz flow.
type AttemptService interface {
	GetOrCreateAttempt(userID, quizID uint) (*dto.AttemptDTO, error)
	GetQuestion(userID, quizID uint, index int) (*dto.CurrentQuestionDTO, error)
}

type attemptService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository

	// rng is injected so tests can seed the shuffle; *rand.Rand is not safe for
	// concurrent use, hence the mutex.
	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	rng *rand.Rand,
) AttemptService {
	return &attemptService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		rng:          rng,
	}
}

// GetOrCreateAttempt returns the user's attempt for the quiz, creating it with a fixed
// question order on first visit. The unique index on (user_id, quiz_id) decides a
// concurrent creation race; the loser re-reads the winner's row.
func (s *attemptService) GetOrCreateAttempt(userID, quizID uint) (*dto.AttemptDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptRepo.FindByUserAndQuiz(userID, quizID)
	if err == nil {
		if len(attempt.QuestionOrder) == 0 {
			return s.repairQuestionOrder(attempt, quiz)
		}
		return attemptToDTO(attempt), nil
	}
	if !errors.Is(err, model.ErrAttemptNotFound) {
		return nil, err
	}

	order, err := s.buildQuestionOrder(quiz)
	if err != nil {
		return nil, err
	}

	attempt = &model.QuizAttempt{
		UserID:        userID,
		QuizID:        quizID,
		QuestionOrder: order,
		Answers:       datatypes.NewJSONType(model.AnswersCache{}),
	}
	if err := s.attemptRepo.CreateWithQuestionAttempts(attempt); err != nil {
		// Most likely the unique index rejected a duplicate from a concurrent
		// request; the existing row is authoritative either way.
		if existing, ferr := s.attemptRepo.FindByUserAndQuiz(userID, quizID); ferr == nil {
			log.Info().Uint("userID", userID).Uint("quizID", quizID).
				Msg("Attempt creation raced, returning existing attempt")
			return attemptToDTO(existing), nil
		}
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("Failed to create attempt")
		return nil, err
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("userID", userID).Uint("quizID", quizID).
		Int("questions", len(order)).Msg("Attempt created")
	return attemptToDTO(attempt), nil
}

// GetQuestion resolves the question at the given position of the attempt's order.
// Past-the-end indexes signal the finished state rather than an error.
func (s *attemptService) GetQuestion(userID, quizID uint, index int) (*dto.CurrentQuestionDTO, error) {
	attempt, err := s.attemptRepo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}

	total := len(attempt.QuestionOrder)
	if index < 0 {
		return nil, model.ErrQuestionNotInAttempt
	}
	if index >= total {
		return &dto.CurrentQuestionDTO{Finished: true, Index: index, Total: total}, nil
	}

	questionID := attempt.QuestionOrder[index]
	question, err := s.questionRepo.FindByIDWithChoices(questionID)
	if err != nil {
		// The catalog may have changed underneath an old attempt.
		log.Warn().Err(err).Uint("questionID", questionID).Uint("attemptID", attempt.ID).
			Msg("Question in attempt order no longer resolvable")
		return nil, err
	}

	choices := make([]dto.ChoiceDTO, 0, len(question.Choices))
	for _, c := range question.Choices {
		choices = append(choices, dto.ChoiceDTO{ID: c.ID, Text: c.Text})
	}

	timeLimit := attempt.Quiz.TimePerQuestion
	if question.TimeLimit != nil {
		timeLimit = *question.TimeLimit
	}

	return &dto.CurrentQuestionDTO{
		Finished:         false,
		Index:            index,
		Total:            total,
		QuestionID:       question.ID,
		Question:         question.Text,
		Choices:          choices,
		TimeLimitSeconds: timeLimit,
	}, nil
}

// buildQuestionOrder computes the order the attempt will be locked to: a uniform
// shuffle when the quiz randomizes, catalog order otherwise.
func (s *attemptService) buildQuestionOrder(quiz *model.Quiz) (datatypes.JSONSlice[uint], error) {
	ids, err := s.questionRepo.FindIDsByQuizID(quiz.ID)
	if err != nil {
		return nil, err
	}
	if quiz.RandomizeQuestions {
		s.rngMu.Lock()
		s.rng.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
		s.rngMu.Unlock()
	}
	return datatypes.NewJSONSlice(ids), nil
}

// repairQuestionOrder backfills attempts persisted without an order. The conditional
// update keeps the write one-time; whatever order ends up stored wins.
func (s *attemptService) repairQuestionOrder(attempt *model.QuizAttempt, quiz *model.Quiz) (*dto.AttemptDTO, error) {
	order, err := s.buildQuestionOrder(quiz)
	if err != nil {
		return nil, err
	}
	// A quiz without questions has a legitimately empty order; nothing to repair.
	if len(order) == 0 {
		return attemptToDTO(attempt), nil
	}
	updated, err := s.attemptRepo.UpdateQuestionOrderIfEmpty(attempt.ID, order)
	if err != nil {
		return nil, err
	}
	if updated {
		if err := s.attemptRepo.EnsureQuestionAttempts(attempt.ID, order); err != nil {
			return nil, err
		}
		log.Info().Uint("attemptID", attempt.ID).Msg("Repaired empty question order on attempt")
	}
	repaired, err := s.attemptRepo.FindByUserAndQuiz(attempt.UserID, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	return attemptToDTO(repaired), nil
}

func attemptToDTO(attempt *model.QuizAttempt) *dto.AttemptDTO {
	return &dto.AttemptDTO{
		ID:              attempt.ID,
		QuizID:          attempt.QuizID,
		UserID:          attempt.UserID,
		StartedAt:       attempt.StartedAt,
		FinishedAt:      attempt.FinishedAt,
		Score:           attempt.Score,
		DurationSeconds: attempt.DurationSeconds,
		TotalQuestions:  len(attempt.QuestionOrder),
	}
}
