package service

import (
	"context"
	"errors"
	"time"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/arjunm/coursehub/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseService struct {
	courseRepo     repository.CourseRepository
	lectureRepo    repository.LectureRepository
	enrollmentRepo repository.EnrollmentRepository
	ratingRepo     repository.RatingRepository
	userRepo       repository.UserRepository
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	lectureRepo repository.LectureRepository,
	enrollmentRepo repository.EnrollmentRepository,
	ratingRepo repository.RatingRepository,
	userRepo repository.UserRepository,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		lectureRepo:    lectureRepo,
		enrollmentRepo: enrollmentRepo,
		ratingRepo:     ratingRepo,
		userRepo:       userRepo,
	}
}

type CreateCourseInput struct {
	Title        string
	Subtitle     string
	Description  string
	Category     string
	Level        domain.CourseLevel
	Price        float64
	Currency     string
	ThumbnailURL string
}

func (s *CourseService) CreateCourse(ctx context.Context, instructorID uuid.UUID, input CreateCourseInput) (*domain.Course, error) {
	instructor, err := s.userRepo.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if instructor.Role != domain.RoleInstructor && instructor.Role != domain.RoleAdmin {
		return nil, domain.ErrNotInstructor
	}

	level := input.Level
	if level == "" {
		level = domain.LevelBeginner
	}
	if !level.Valid() {
		return nil, domain.ErrInvalidRole
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}

	course := &domain.Course{
		ID:           uuid.New(),
		Title:        input.Title,
		Subtitle:     input.Subtitle,
		Description:  input.Description,
		Category:     input.Category,
		Level:        level,
		Price:        input.Price,
		Currency:     currency,
		ThumbnailURL: input.ThumbnailURL,
		InstructorID: instructorID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

type UpdateCourseInput struct {
	Title        *string
	Subtitle     *string
	Description  *string
	Category     *string
	Price        *float64
	ThumbnailURL *string
}

func (s *CourseService) UpdateCourse(ctx context.Context, courseID, actorID uuid.UUID, input UpdateCourseInput) (*domain.Course, error) {
	course, err := s.getOwnedCourse(ctx, courseID, actorID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Subtitle != nil {
		course.Subtitle = *input.Subtitle
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Category != nil {
		course.Category = *input.Category
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.ThumbnailURL != nil {
		course.ThumbnailURL = *input.ThumbnailURL
	}
	course.UpdatedAt = time.Now()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

func (s *CourseService) SetPublished(ctx context.Context, courseID, actorID uuid.UUID, published bool) (*domain.Course, error) {
	course, err := s.getOwnedCourse(ctx, courseID, actorID)
	if err != nil {
		return nil, err
	}

	course.IsPublished = published
	course.UpdatedAt = time.Now()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// GetCourse applies visibility: unpublished courses are only visible to their
// instructor or an admin. viewerID is uuid.Nil for anonymous requests.
func (s *CourseService) GetCourse(ctx context.Context, courseID, viewerID uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	if course.IsPublished {
		return course, nil
	}

	if viewerID == uuid.Nil {
		return nil, domain.ErrCourseNotFound
	}
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	if course.InstructorID != viewerID && viewer.Role != domain.RoleAdmin {
		// Hide existence of unpublished courses.
		return nil, domain.ErrCourseNotFound
	}

	return course, nil
}

func (s *CourseService) ListPublished(ctx context.Context, category string, limit, offset int) ([]*domain.Course, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.courseRepo.ListPublished(ctx, category, limit, offset)
}

type AddLectureInput struct {
	Title           string
	Description     string
	VideoURL        string
	DurationSeconds int
	IsPreview       bool
	Position        int
}

func (s *CourseService) AddLecture(ctx context.Context, courseID, actorID uuid.UUID, input AddLectureInput) (*domain.Lecture, error) {
	course, err := s.getOwnedCourse(ctx, courseID, actorID)
	if err != nil {
		return nil, err
	}

	lecture := &domain.Lecture{
		ID:              uuid.New(),
		CourseID:        course.ID,
		Title:           input.Title,
		Description:     input.Description,
		VideoURL:        input.VideoURL,
		DurationSeconds: input.DurationSeconds,
		IsPreview:       input.IsPreview,
		Position:        input.Position,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.lectureRepo.Create(ctx, lecture); err != nil {
		return nil, err
	}

	course.TotalLectures++
	course.UpdatedAt = time.Now()
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return lecture, nil
}

// ListLectures blanks video URLs of non-preview lectures unless the viewer is
// enrolled, the instructor, or an admin.
func (s *CourseService) ListLectures(ctx context.Context, courseID, viewerID uuid.UUID) ([]*domain.Lecture, error) {
	course, err := s.GetCourse(ctx, courseID, viewerID)
	if err != nil {
		return nil, err
	}

	lectures, err := s.lectureRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	full, err := s.hasFullAccess(ctx, course, viewerID)
	if err != nil {
		return nil, err
	}
	if full {
		return lectures, nil
	}

	for _, l := range lectures {
		if !l.IsPreview {
			l.VideoURL = ""
		}
	}
	return lectures, nil
}

func (s *CourseService) RateCourse(ctx context.Context, courseID, userID uuid.UUID, stars int, comment string) (*domain.Rating, error) {
	if stars < 1 || stars > 5 {
		return nil, domain.ErrInvalidStars
	}

	if _, err := s.GetCourse(ctx, courseID, userID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, domain.ErrNotEnrolled
	}

	rating := &domain.Rating{
		ID:        uuid.New(),
		CourseID:  courseID,
		UserID:    userID,
		Stars:     stars,
		Comment:   comment,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *CourseService) ListRatings(ctx context.Context, courseID uuid.UUID) ([]*domain.Rating, error) {
	return s.ratingRepo.GetByCourseID(ctx, courseID)
}

func (s *CourseService) getOwnedCourse(ctx context.Context, courseID, actorID uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	if course.InstructorID == actorID {
		return course, nil
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrNotInstructor
	}

	return course, nil
}

func (s *CourseService) hasFullAccess(ctx context.Context, course *domain.Course, viewerID uuid.UUID) (bool, error) {
	if viewerID == uuid.Nil {
		return false, nil
	}
	if course.InstructorID == viewerID {
		return true, nil
	}

	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err == nil && viewer.Role == domain.RoleAdmin {
		return true, nil
	}

	return s.enrollmentRepo.Exists(ctx, viewerID, course.ID)
}
