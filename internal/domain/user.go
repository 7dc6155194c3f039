package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
	AvatarURL    string    `json:"avatarUrl"`
	Bio          string    `json:"bio"`
	LastActiveAt time.Time `json:"lastActiveAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Enrollment links a user to a course they have paid for. The unique index on
// (user_id, course_id) makes enrollment creation idempotent across repeated
// payment verifications.
type Enrollment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID   uuid.UUID `json:"courseId" gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course"`
	EnrolledAt time.Time `json:"enrolledAt" gorm:"not null"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
