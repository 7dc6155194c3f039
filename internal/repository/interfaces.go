package repository

import (
	"context"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	TouchLastActive(ctx context.Context, id uuid.UUID) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	ListPublished(ctx context.Context, category string, limit, offset int) ([]*domain.Course, error)
}

type LectureRepository interface {
	Create(ctx context.Context, lecture *domain.Lecture) error
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*domain.Lecture, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Enrollment, error)
}

// PurchaseRepository is the purchase ledger. UpdateStatus performs a single
// conditional UPDATE guarded by the expected current status and reports whether
// a row actually transitioned, so racing callers cannot double-apply a
// transition.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.CoursePurchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CoursePurchase, error)
	GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.CoursePurchase, error)
	GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.CoursePurchase, error)
	GetCompletedByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.CoursePurchase, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.CoursePurchase, error)
	SetGatewayOrderID(ctx context.Context, id uuid.UUID, orderID string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PurchaseStatus, set map[string]interface{}) (bool, error)
}

type RatingRepository interface {
	Upsert(ctx context.Context, rating *domain.Rating) error
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*domain.Rating, error)
}

type Repositories struct {
	User       UserRepository
	Course     CourseRepository
	Lecture    LectureRepository
	Enrollment EnrollmentRepository
	Purchase   PurchaseRepository
	Rating     RatingRepository
}
