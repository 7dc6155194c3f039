package domain

import "errors"

// Account errors
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
)

// Catalog errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseNotPublished = errors.New("course is not published")
	ErrNotInstructor      = errors.New("only the course instructor can perform this action")
	ErrNotEnrolled        = errors.New("user is not enrolled in this course")
	ErrInvalidStars       = errors.New("stars must be between 1 and 5")
)

// Payment errors
var (
	ErrPurchaseNotFound     = errors.New("purchase record not found")
	ErrAlreadyPurchased     = errors.New("course already purchased")
	ErrVerificationFailed   = errors.New("payment verification failed")
	ErrPurchaseNotPending   = errors.New("purchase is not pending")
	ErrPurchaseNotCompleted = errors.New("purchase is not completed")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
)
