package repository

import (
	"github.com/eduquest/eduquest/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAllWithQuizCount() ([]CategoryWithQuizCount, error)
}

type CategoryWithQuizCount struct {
	model.Category
	QuizCount int
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAllWithQuizCount() ([]CategoryWithQuizCount, error) {
	var results []CategoryWithQuizCount
	err := r.db.Model(&model.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM quizzes WHERE quizzes.category_id = categories.id AND quizzes.published = true AND quizzes.deleted_at IS NULL) as quiz_count").
		Where("categories.deleted_at IS NULL").
		Order("categories.name ASC").
		Scan(&results).Error
	return results, err
}
