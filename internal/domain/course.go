package domain

import (
	"time"

	"github.com/google/uuid"
)

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string      `json:"title" gorm:"not null"`
	Subtitle      string      `json:"subtitle"`
	Description   string      `json:"description"`
	Category      string      `json:"category" gorm:"index;not null"`
	Level         CourseLevel `json:"level" gorm:"type:varchar(20);not null;default:'beginner'"`
	Price         float64     `json:"price" gorm:"not null"`
	Currency      string      `json:"currency" gorm:"type:varchar(10);not null;default:'INR'"`
	ThumbnailURL  string      `json:"thumbnailUrl"`
	InstructorID  uuid.UUID   `json:"instructorId" gorm:"type:uuid;not null;index"`
	IsPublished   bool        `json:"isPublished" gorm:"not null;default:false"`
	TotalLectures int         `json:"totalLectures" gorm:"not null;default:0"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`

	Instructor *User      `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Lectures   []*Lecture `json:"lectures,omitempty" gorm:"foreignKey:CourseID"`
}

type Lecture struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CourseID        uuid.UUID `json:"courseId" gorm:"type:uuid;not null;index"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"videoUrl"`
	DurationSeconds int       `json:"durationSeconds" gorm:"not null;default:0"`
	IsPreview       bool      `json:"isPreview" gorm:"not null;default:false"`
	Position        int       `json:"position" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Rating struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CourseID  uuid.UUID `json:"courseId" gorm:"type:uuid;not null;uniqueIndex:idx_rating_course_user"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_rating_course_user"`
	Stars     int       `json:"stars" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
