package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
	role     domain.UserRole
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("Test User %s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		role:     domain.RoleStudent,
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithRole(role domain.UserRole) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		LastActiveAt: time.Now(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// CourseBuilder creates test courses with a builder pattern
type CourseBuilder struct {
	title        string
	category     string
	price        float64
	instructorID uuid.UUID
	published    bool
}

func NewCourseBuilder(instructorID uuid.UUID) *CourseBuilder {
	return &CourseBuilder{
		title:        fmt.Sprintf("Test Course %s", uuid.New().String()[:8]),
		category:     "programming",
		price:        499.00,
		instructorID: instructorID,
		published:    true,
	}
}

func (b *CourseBuilder) WithTitle(title string) *CourseBuilder {
	b.title = title
	return b
}

func (b *CourseBuilder) WithPrice(price float64) *CourseBuilder {
	b.price = price
	return b
}

func (b *CourseBuilder) Unpublished() *CourseBuilder {
	b.published = false
	return b
}

func (b *CourseBuilder) Build(t *testing.T, db *gorm.DB) *domain.Course {
	t.Helper()

	course := &domain.Course{
		ID:           uuid.New(),
		Title:        b.title,
		Category:     b.category,
		Level:        domain.LevelBeginner,
		Price:        b.price,
		Currency:     "INR",
		InstructorID: b.instructorID,
		IsPublished:  b.published,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	return course
}

// PurchaseBuilder creates ledger records in a chosen state
type PurchaseBuilder struct {
	courseID uuid.UUID
	userID   uuid.UUID
	amount   int64
	status   domain.PurchaseStatus
	orderID  string
}

func NewPurchaseBuilder(userID, courseID uuid.UUID) *PurchaseBuilder {
	return &PurchaseBuilder{
		courseID: courseID,
		userID:   userID,
		amount:   49900,
		status:   domain.PurchasePending,
		orderID:  fmt.Sprintf("order_%s", uuid.New().String()[:12]),
	}
}

func (b *PurchaseBuilder) WithStatus(status domain.PurchaseStatus) *PurchaseBuilder {
	b.status = status
	return b
}

func (b *PurchaseBuilder) WithOrderID(orderID string) *PurchaseBuilder {
	b.orderID = orderID
	return b
}

func (b *PurchaseBuilder) WithAmount(amount int64) *PurchaseBuilder {
	b.amount = amount
	return b
}

func (b *PurchaseBuilder) Build(t *testing.T, db *gorm.DB) *domain.CoursePurchase {
	t.Helper()

	purchase := &domain.CoursePurchase{
		ID:             uuid.New(),
		CourseID:       b.courseID,
		UserID:         b.userID,
		Amount:         b.amount,
		Currency:       "INR",
		Status:         b.status,
		GatewayOrderID: b.orderID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := db.Create(purchase).Error; err != nil {
		t.Fatalf("failed to create purchase: %v", err)
	}

	return purchase
}
