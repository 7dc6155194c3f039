package postgres

import (
	"context"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) ListPublished(ctx context.Context, category string, limit, offset int) ([]*domain.Course, error) {
	var courses []*domain.Course
	q := r.db.WithContext(ctx).
		Preload("Instructor").
		Where("is_published = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
