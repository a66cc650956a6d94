package service

import (
	"testing"
	"time"

	"github.com/eduquest/eduquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdersByScoreThenFinishTime(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Minute)
	t3 := t1.Add(10 * time.Minute)

	quizRepo := &mockQuizRepository{
		findByIDFunc: func(id uint) (*model.Quiz, error) { return &model.Quiz{ID: id}, nil },
	}
	// Rows arrive in storage order, deliberately not ranked.
	attemptRepo := &mockAttemptRepository{
		findFinishedByQuizFunc: func(quizID uint) ([]model.QuizAttempt, error) {
			return []model.QuizAttempt{
				{UserID: 9, QuizID: quizID, Score: floatPtr(80), FinishedAt: &t3},
				{UserID: 3, QuizID: quizID, Score: floatPtr(90), FinishedAt: &t2},
				{UserID: 5, QuizID: quizID, Score: floatPtr(100)}, // never finalized
				{UserID: 7, QuizID: quizID, Score: floatPtr(90), FinishedAt: &t1},
			}, nil
		},
	}

	svc := NewLeaderboardService(quizRepo, attemptRepo)
	entries, err := svc.Rank(2, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3, "unfinished attempts never rank")

	assert.Equal(t, uint(7), entries[0].UserID, "equal scores rank the earlier finisher first")
	assert.Equal(t, 90.0, entries[0].Score)
	assert.Equal(t, t1, entries[0].FinishedAt)
	assert.Equal(t, uint(3), entries[1].UserID)
	assert.Equal(t, t2, entries[1].FinishedAt)
	assert.Equal(t, uint(9), entries[2].UserID)
	assert.Equal(t, 80.0, entries[2].Score)
}

func TestRankAppliesLimitAfterRanking(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	quizRepo := &mockQuizRepository{
		findByIDFunc: func(id uint) (*model.Quiz, error) { return &model.Quiz{ID: id}, nil },
	}
	attemptRepo := &mockAttemptRepository{
		findFinishedByQuizFunc: func(quizID uint) ([]model.QuizAttempt, error) {
			attempts := make([]model.QuizAttempt, 0, 5)
			for i := 0; i < 5; i++ {
				finishedAt := base.Add(time.Duration(i) * time.Minute)
				attempts = append(attempts, model.QuizAttempt{
					UserID:     uint(i + 1),
					QuizID:     quizID,
					Score:      floatPtr(float64(10 * (i + 1))),
					FinishedAt: &finishedAt,
				})
			}
			return attempts, nil
		},
	}

	svc := NewLeaderboardService(quizRepo, attemptRepo)
	entries, err := svc.Rank(2, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 50.0, entries[0].Score, "limit cuts the tail, not the top")
	assert.Equal(t, 40.0, entries[1].Score)
	assert.Equal(t, 30.0, entries[2].Score)
}

func TestRankUnknownQuiz(t *testing.T) {
	quizRepo := &mockQuizRepository{
		findByIDFunc: func(id uint) (*model.Quiz, error) { return nil, model.ErrQuizNotFound },
	}

	svc := NewLeaderboardService(quizRepo, &mockAttemptRepository{})
	_, err := svc.Rank(42, 10)
	assert.ErrorIs(t, err, model.ErrQuizNotFound)
}

func TestRankTolerateNilScore(t *testing.T) {
	finishedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	quizRepo := &mockQuizRepository{
		findByIDFunc: func(id uint) (*model.Quiz, error) { return &model.Quiz{ID: id}, nil },
	}
	attemptRepo := &mockAttemptRepository{
		findFinishedByQuizFunc: func(quizID uint) ([]model.QuizAttempt, error) {
			return []model.QuizAttempt{{UserID: 5, QuizID: quizID, FinishedAt: &finishedAt}}, nil
		},
	}

	svc := NewLeaderboardService(quizRepo, attemptRepo)
	entries, err := svc.Rank(2, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Zero(t, entries[0].Score)
	assert.Equal(t, finishedAt, entries[0].FinishedAt)
}
