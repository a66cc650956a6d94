package service

import (
	"fmt"

	"github.com/eduquest/eduquest/internal/dto"
	"github.com/eduquest/eduquest/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// QuizService serves the read-only catalog views: category listing, published quiz
// listing and quiz details. Catalog writes belong to the external authoring surface.
type QuizService interface {
	GetCategories() ([]dto.CategorySummaryDTO, error)
	GetPublishedQuizzes() ([]dto.QuizSummaryDTO, error)
	GetQuizDetails(quizID uint) (*dto.QuizDetailDTO, error)
	GetQuizDetailsBySlug(slug string) (*dto.QuizDetailDTO, error)
}

type quizService struct {
	quizRepo     repository.QuizRepository
	categoryRepo repository.CategoryRepository
}

func NewQuizService(quizRepo repository.QuizRepository, categoryRepo repository.CategoryRepository) QuizService {
	return &quizService{quizRepo: quizRepo, categoryRepo: categoryRepo}
}

func (s *quizService) GetCategories() ([]dto.CategorySummaryDTO, error) {
	categories, err := s.categoryRepo.FindAllWithQuizCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get categories with quiz count from repository")
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}

	dtos := make([]dto.CategorySummaryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, dto.CategorySummaryDTO{
			ID:        c.Category.ID,
			Name:      c.Category.Name,
			Slug:      c.Category.Slug,
			QuizCount: c.QuizCount,
		})
	}
	return dtos, nil
}

func (s *quizService) GetPublishedQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindPublishedWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get published quizzes from repository")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}

	dtos := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, q := range quizzes {
		dtos = append(dtos, dto.QuizSummaryDTO{
			ID:                 q.Quiz.ID,
			Title:              q.Quiz.Title,
			Slug:               q.Quiz.Slug,
			Description:        q.Quiz.Description,
			CategoryID:         q.Quiz.CategoryID,
			TimePerQuestion:    q.Quiz.TimePerQuestion,
			RandomizeQuestions: q.Quiz.RandomizeQuestions,
			QuestionCount:      q.QuestionCount,
			CreatedAt:          q.Quiz.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *quizService) GetQuizDetails(quizID uint) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("Failed to get quiz details from repository")
		return nil, err
	}

	var resp dto.QuizDetailDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		log.Error().Err(err).Msg("Failed to copy Quiz model to QuizDetailDTO")
		return nil, fmt.Errorf("error preparing quiz details response: %w", err)
	}
	return &resp, nil
}

// GetQuizDetailsBySlug resolves a quiz by its URL slug for slug-addressed clients.
func (s *quizService) GetQuizDetailsBySlug(slug string) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindBySlug(slug)
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("Failed to resolve quiz by slug")
		return nil, err
	}
	return s.GetQuizDetails(quiz.ID)
}
