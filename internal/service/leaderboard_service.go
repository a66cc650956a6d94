package service

import (
	"sort"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/model"
	"github.com/eduquest/eduquest/internal/repository"
	"github.com/rs/zerolog/log"
)

// LeaderboardService ranks finished attempts for a quiz. Unfinished attempts never
// appear, whatever their recorded answers hold. Higher scores rank first; ties on
// score are broken by earlier finish time.
type LeaderboardService interface {
	Rank(quizID uint, limit int) ([]dto.LeaderboardEntryDTO, error)
}

type leaderboardService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
}

func NewLeaderboardService(quizRepo repository.QuizRepository, attemptRepo repository.AttemptRepository) LeaderboardService {
	return &leaderboardService{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

func (s *leaderboardService) Rank(quizID uint, limit int) ([]dto.LeaderboardEntryDTO, error) {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.FindFinishedByQuiz(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to load finished attempts for leaderboard")
		return nil, err
	}

	ranked := make([]model.QuizAttempt, 0, len(attempts))
	for _, a := range attempts {
		if a.FinishedAt == nil {
			continue
		}
		ranked = append(ranked, a)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := attemptScore(ranked[i]), attemptScore(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].FinishedAt.Before(*ranked[j].FinishedAt)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]dto.LeaderboardEntryDTO, 0, len(ranked))
	for _, a := range ranked {
		entries = append(entries, dto.LeaderboardEntryDTO{
			UserID:     a.UserID,
			Score:      attemptScore(a),
			FinishedAt: *a.FinishedAt,
		})
	}
	return entries, nil
}

func attemptScore(a model.QuizAttempt) float64 {
	if a.Score != nil {
		return *a.Score
	}
	return 0
}
