package service

import (
	"testing"
	"time"

	"github.com/eduquest/eduquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizeComputesPercentageScore(t *testing.T) {
	startedAt := time.Now().Add(-95 * time.Second)
	var finalized struct {
		score    float64
		duration int
	}

	attemptRepo := &mockAttemptRepository{
		findByIDAndUserFunc: func(id, userID uint) (*model.QuizAttempt, error) {
			return &model.QuizAttempt{ID: id, UserID: userID, QuizID: 2, StartedAt: startedAt}, nil
		},
		finalizeIfUnfinishedFunc: func(id uint, score float64, finishedAt time.Time, durationSeconds int) (bool, error) {
			finalized.score = score
			finalized.duration = durationSeconds
			return true, nil
		},
	}
	qaRepo := &mockQuestionAttemptRepository{
		countByAttemptFunc:        func(attemptID uint) (int64, error) { return 4, nil },
		countCorrectByAttemptFunc: func(attemptID uint) (int64, error) { return 3, nil },
	}

	svc := NewScoringService(attemptRepo, qaRepo, &mockQuizRepository{})
	resp, err := svc.Finalize(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 75.0, resp.Score)
	assert.Equal(t, 75.0, finalized.score)
	assert.GreaterOrEqual(t, resp.DurationSeconds, 94)
	assert.LessOrEqual(t, resp.DurationSeconds, 96)
	assert.Equal(t, finalized.duration, resp.DurationSeconds)
}

func TestFinalizeRoundsToTwoDecimals(t *testing.T) {
	attemptRepo := &mockAttemptRepository{
		findByIDAndUserFunc: func(id, userID uint) (*model.QuizAttempt, error) {
			return &model.QuizAttempt{ID: id, UserID: userID, QuizID: 2, StartedAt: time.Now()}, nil
		},
		finalizeIfUnfinishedFunc: func(id uint, score float64, finishedAt time.Time, durationSeconds int) (bool, error) {
			return true, nil
		},
	}
	qaRepo := &mockQuestionAttemptRepository{
		countByAttemptFunc:        func(attemptID uint) (int64, error) { return 3, nil },
		countCorrectByAttemptFunc: func(attemptID uint) (int64, error) { return 1, nil },
	}

	svc := NewScoringService(attemptRepo, qaRepo, &mockQuizRepository{})
	resp, err := svc.Finalize(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 33.33, resp.Score)
}

func TestFinalizeScoresEmptyAttemptZero(t *testing.T) {
	attemptRepo := &mockAttemptRepository{
		findByIDAndUserFunc: func(id, userID uint) (*model.QuizAttempt, error) {
			return &model.QuizAttempt{ID: id, UserID: userID, QuizID: 2, StartedAt: time.Now()}, nil
		},
		finalizeIfUnfinishedFunc: func(id uint, score float64, finishedAt time.Time, durationSeconds int) (bool, error) {
			assert.Zero(t, score)
			return true, nil
		},
	}
	qaRepo := &mockQuestionAttemptRepository{
		countByAttemptFunc:        func(attemptID uint) (int64, error) { return 0, nil },
		countCorrectByAttemptFunc: func(attemptID uint) (int64, error) { return 0, nil },
	}

	svc := NewScoringService(attemptRepo, qaRepo, &mockQuizRepository{})
	resp, err := svc.Finalize(1, 1)
	require.NoError(t, err)
	assert.Zero(t, resp.Score)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	counted := false

	attemptRepo := &mockAttemptRepository{
		findByIDAndUserFunc: func(id, userID uint) (*model.QuizAttempt, error) {
			return &model.QuizAttempt{
				ID:              id,
				UserID:          userID,
				QuizID:          2,
				StartedAt:       time.Now().Add(-time.Hour),
				FinishedAt:      timePtr(time.Now().Add(-30 * time.Minute)),
				Score:           floatPtr(60),
				DurationSeconds: intPtr(1800),
			}, nil
		},
	}
	qaRepo := &mockQuestionAttemptRepository{
		countByAttemptFunc: func(attemptID uint) (int64, error) {
			counted = true
			return 0, nil
		},
	}

	svc := NewScoringService(attemptRepo, qaRepo, &mockQuizRepository{})
	resp, err := svc.Finalize(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 60.0, resp.Score)
	assert.Equal(t, 1800, resp.DurationSeconds)
	assert.False(t, counted, "an already finished attempt is never recounted")
}

func TestFinalizeLoserReturnsWinnerValues(t *testing.T) {
	calls := 0

	attemptRepo := &mockAttemptRepository{
		findByIDAndUserFunc: func(id, userID uint) (*model.QuizAttempt, error) {
			calls++
			if calls == 1 {
				return &model.QuizAttempt{ID: id, UserID: userID, QuizID: 2, StartedAt: time.Now()}, nil
			}
			return &model.QuizAttempt{
				ID:              id,
				UserID:          userID,
				QuizID:          2,
				StartedAt:       time.Now(),
				FinishedAt:      timePtr(time.Now()),
				Score:           floatPtr(25),
				DurationSeconds: intPtr(40),
			}, nil
		},
		finalizeIfUnfinishedFunc: func(id uint, score float64, finishedAt time.Time, durationSeconds int) (bool, error) {
			return false, nil
		},
	}
	qaRepo := &mockQuestionAttemptRepository{
		countByAttemptFunc:        func(attemptID uint) (int64, error) { return 4, nil },
		countCorrectByAttemptFunc: func(attemptID uint) (int64, error) { return 4, nil },
	}

	svc := NewScoringService(attemptRepo, qaRepo, &mockQuizRepository{})
	resp, err := svc.Finalize(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 25.0, resp.Score)
	assert.Equal(t, 40, resp.DurationSeconds)
	assert.Equal(t, 2, calls, "loser re-reads the stored row")
}

func TestGetResultsProjectsAnswersOverCatalog(t *testing.T) {
	quiz := &model.Quiz{
		ID: 2,
		Questions: []model.Question{
			{
				ID:   4,
				Text: "Capital of France?",
				Choices: []model.Choice{
					{ID: 11, QuestionID: 4, Text: "Paris", IsCorrect: true},
					{ID: 12, QuestionID: 4, Text: "Lyon"},
				},
			},
			{
				ID:   5,
				Text: "2 + 2?",
				Choices: []model.Choice{
					{ID: 21, QuestionID: 5, Text: "4", IsCorrect: true},
					{ID: 22, QuestionID: 5, Text: "5"},
				},
			},
			{
				ID:   6,
				Text: "Largest ocean?",
				Choices: []model.Choice{
					{ID: 31, QuestionID: 6, Text: "Pacific", IsCorrect: true},
					{ID: 32, QuestionID: 6, Text: "Atlantic"},
				},
			},
			{
				ID:   7,
				Text: "Boiling point of water at sea level?",
				Choices: []model.Choice{
					{ID: 41, QuestionID: 7, Text: "100C", IsCorrect: true},
					{ID: 42, QuestionID: 7, Text: "90C"},
				},
			},
		},
	}
	rows := []model.QuestionAttempt{
		{AttemptID: 1, QuestionID: 4, ChoiceID: uintPtr(11), Correct: true},
		{AttemptID: 1, QuestionID: 5, ChoiceID: uintPtr(22)},
		// question 6 left unanswered, row still pre-created
		{AttemptID: 1, QuestionID: 6},
		{AttemptID: 1, QuestionID: 7, ChoiceID: uintPtr(999)},
	}

	attemptRepo := &mockAttemptRepository{
		findByUserAndQuizFunc: func(userID, quizID uint) (*model.QuizAttempt, error) {
			return &model.QuizAttempt{
				ID:     1,
				UserID: userID,
				QuizID: quizID,
				Score:  floatPtr(25),
			}, nil
		},
	}
	quizRepo := &mockQuizRepository{
		findByIDWithQuestionsFunc: func(id uint) (*model.Quiz, error) { return quiz, nil },
	}
	qaRepo := &mockQuestionAttemptRepository{
		findByAttemptIDFunc: func(attemptID uint) ([]model.QuestionAttempt, error) {
			assert.Equal(t, uint(1), attemptID)
			return rows, nil
		},
	}

	svc := NewScoringService(attemptRepo, qaRepo, quizRepo)
	results, err := svc.GetResults(1, 2)
	require.NoError(t, err)

	assert.Equal(t, uint(2), results.QuizID)
	assert.Equal(t, uint(1), results.AttemptID)
	assert.Equal(t, 1, results.Score)
	assert.Equal(t, 4, results.Total)
	require.NotNil(t, results.FinalScore)
	assert.Equal(t, 25.0, *results.FinalScore)
	require.Len(t, results.PerQuestion, 4)

	correct := results.PerQuestion[0]
	assert.Equal(t, "Paris", correct.SelectedText)
	assert.Equal(t, "Paris", correct.CorrectAnswerText)
	assert.True(t, correct.Correct)

	wrong := results.PerQuestion[1]
	assert.Equal(t, "5", wrong.SelectedText)
	assert.Equal(t, "4", wrong.CorrectAnswerText)
	assert.False(t, wrong.Correct)

	unanswered := results.PerQuestion[2]
	assert.Equal(t, "No answer", unanswered.SelectedText)
	assert.Equal(t, "Pacific", unanswered.CorrectAnswerText)
	assert.False(t, unanswered.Correct)

	stale := results.PerQuestion[3]
	assert.Equal(t, "Invalid choice", stale.SelectedText)
	assert.False(t, stale.Correct)
}

func TestGetResultsMissingAttempt(t *testing.T) {
	attemptRepo := &mockAttemptRepository{
		findByUserAndQuizFunc: func(userID, quizID uint) (*model.QuizAttempt, error) {
			return nil, model.ErrAttemptNotFound
		},
	}

	svc := NewScoringService(attemptRepo, &mockQuestionAttemptRepository{}, &mockQuizRepository{})
	_, err := svc.GetResults(1, 2)
	assert.ErrorIs(t, err, model.ErrAttemptNotFound)
}
