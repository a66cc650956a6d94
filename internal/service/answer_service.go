package service

import (
	"time"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/model"
	"github.com/eduquest/eduquest/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnswerService records one answer per attempt question, last-write-wins. Correctness
// is evaluated against the choice at the moment of answering and frozen into the
// question-attempt row.
type AnswerService interface {
	RecordAnswer(userID, attemptID uint, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
}

type answerService struct {
	attemptRepo         repository.AttemptRepository
	questionRepo        repository.QuestionRepository
	questionAttemptRepo repository.QuestionAttemptRepository
}

func NewAnswerService(
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	questionAttemptRepo repository.QuestionAttemptRepository,
) AnswerService {
	return &answerService{
		attemptRepo:         attemptRepo,
		questionRepo:        questionRepo,
		questionAttemptRepo: questionAttemptRepo,
	}
}

func (s *answerService) RecordAnswer(userID, attemptID uint, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	attempt, err := s.attemptRepo.FindByIDAndUser(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.Finished() {
		return nil, model.ErrAttemptFinished
	}

	// No choice means a timed-out or skipped question: recorded, never correct.
	correct := false
	if req.ChoiceID != nil {
		choice, err := s.questionRepo.FindChoice(*req.ChoiceID, req.QuestionID)
		if err != nil {
			return nil, err
		}
		correct = choice.IsCorrect
	}

	detail := model.AnswerDetail{
		ChoiceID:  req.ChoiceID,
		Correct:   correct,
		TimeTaken: req.TimeTaken,
	}
	if err := s.questionAttemptRepo.RecordAnswer(attempt.ID, req.QuestionID, detail, time.Now()); err != nil {
		return nil, err
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("questionID", req.QuestionID).
		Bool("correct", correct).Msg("Answer recorded")
	return &dto.SubmitAnswerResponse{Correct: correct}, nil
}
