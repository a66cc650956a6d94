package service

import (
	"math"
	"time"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/model"
	"github.com/eduquest/eduquest/internal/repository"
	"github.com/rs/zerolog/log"
)

// ScoringService finalizes attempts exactly once and serves the per-question results
// breakdown.
type ScoringService interface {
	Finalize(userID, attemptID uint) (*dto.FinishAttemptResponse, error)
	GetResults(userID, quizID uint) (*dto.ResultsDTO, error)
}

type scoringService struct {
	attemptRepo         repository.AttemptRepository
	questionAttemptRepo repository.QuestionAttemptRepository
	quizRepo            repository.QuizRepository
}

func NewScoringService(
	attemptRepo repository.AttemptRepository,
	questionAttemptRepo repository.QuestionAttemptRepository,
	quizRepo repository.QuizRepository,
) ScoringService {
	return &scoringService{
		attemptRepo:         attemptRepo,
		questionAttemptRepo: questionAttemptRepo,
		quizRepo:            quizRepo,
	}
}

// Finalize computes the percentage score over the attempt's question-attempt rows and
// freezes it together with finished_at and the elapsed duration. Repeat calls, and the
// loser of a concurrent finalize race, get the stored values back unchanged.
func (s *scoringService) Finalize(userID, attemptID uint) (*dto.FinishAttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByIDAndUser(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.Finished() {
		return finishedResponse(attempt), nil
	}

	total, err := s.questionAttemptRepo.CountByAttempt(attempt.ID)
	if err != nil {
		return nil, err
	}
	correct, err := s.questionAttemptRepo.CountCorrectByAttempt(attempt.ID)
	if err != nil {
		return nil, err
	}

	score := 0.0
	if total > 0 {
		score = roundScore(float64(correct) / float64(total) * 100)
	}
	finishedAt := time.Now()
	duration := int(finishedAt.Sub(attempt.StartedAt).Seconds())

	won, err := s.attemptRepo.FinalizeIfUnfinished(attempt.ID, score, finishedAt, duration)
	if err != nil {
		return nil, err
	}
	if !won {
		// A concurrent finalize got there first; its values stand.
		stored, err := s.attemptRepo.FindByIDAndUser(attemptID, userID)
		if err != nil {
			return nil, err
		}
		return finishedResponse(stored), nil
	}

	log.Info().Uint("attemptID", attempt.ID).Float64("score", score).Int("durationSeconds", duration).
		Msg("Attempt finalized")
	return &dto.FinishAttemptResponse{Score: score, DurationSeconds: duration}, nil
}

// GetResults projects the attempt's question-attempt rows over the quiz's questions in
// catalog order: what was selected, what was right, and the running correct count.
func (s *scoringService) GetResults(userID, quizID uint) (*dto.ResultsDTO, error) {
	attempt, err := s.attemptRepo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	rows, err := s.questionAttemptRepo.FindByAttemptID(attempt.ID)
	if err != nil {
		return nil, err
	}

	answered := make(map[uint]model.QuestionAttempt, len(rows))
	for _, row := range rows {
		answered[row.QuestionID] = row
	}

	entries := make([]dto.ResultEntryDTO, 0, len(quiz.Questions))
	correctCount := 0
	for _, question := range quiz.Questions {
		entry := dto.ResultEntryDTO{
			QuestionText:      question.Text,
			SelectedText:      "No answer",
			CorrectAnswerText: "N/A",
		}
		for _, c := range question.Choices {
			if c.IsCorrect {
				entry.CorrectAnswerText = c.Text
				break
			}
		}
		if row, ok := answered[question.ID]; ok && row.ChoiceID != nil {
			if selected := findChoice(question.Choices, *row.ChoiceID); selected != nil {
				entry.SelectedText = selected.Text
				entry.Correct = row.Correct
			} else {
				entry.SelectedText = "Invalid choice"
			}
		}
		if entry.Correct {
			correctCount++
		}
		entries = append(entries, entry)
	}

	return &dto.ResultsDTO{
		QuizID:      quizID,
		AttemptID:   attempt.ID,
		Score:       correctCount,
		Total:       len(quiz.Questions),
		FinalScore:  attempt.Score,
		PerQuestion: entries,
	}, nil
}

func finishedResponse(attempt *model.QuizAttempt) *dto.FinishAttemptResponse {
	resp := &dto.FinishAttemptResponse{}
	if attempt.Score != nil {
		resp.Score = *attempt.Score
	}
	if attempt.DurationSeconds != nil {
		resp.DurationSeconds = *attempt.DurationSeconds
	}
	return resp
}

func findChoice(choices []model.Choice, id uint) *model.Choice {
	for i := range choices {
		if choices[i].ID == id {
			return &choices[i]
		}
	}
	return nil
}

// roundScore rounds to two decimal places, e.g. 3/4 correct -> 75.00.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
