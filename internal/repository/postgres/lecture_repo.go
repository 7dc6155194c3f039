package postgres

import (
	"context"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type lectureRepository struct {
	db *gorm.DB
}

func NewLectureRepository(db *gorm.DB) *lectureRepository {
	return &lectureRepository{db: db}
}

func (r *lectureRepository) Create(ctx context.Context, lecture *domain.Lecture) error {
	return r.db.WithContext(ctx).Create(lecture).Error
}

func (r *lectureRepository) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*domain.Lecture, error) {
	var lectures []*domain.Lecture
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&lectures).Error
	if err != nil {
		return nil, err
	}
	return lectures, nil
}
