package service

import (
	"github.com/arjunm/coursehub/internal/config"
	"github.com/arjunm/coursehub/internal/metrics"
	"github.com/arjunm/coursehub/internal/repository"
)

type Services struct {
	Token   *TokenService
	Auth    *AuthService
	Course  *CourseService
	Payment *PaymentService
}

func NewServices(repos *repository.Repositories, gw PaymentGateway, collector *metrics.Collector, cfg *config.Config) *Services {
	tokens := NewTokenService(cfg)
	return &Services{
		Token:   tokens,
		Auth:    NewAuthService(repos.User, repos.Enrollment, tokens),
		Course:  NewCourseService(repos.Course, repos.Lecture, repos.Enrollment, repos.Rating, repos.User),
		Payment: NewPaymentService(repos.Purchase, repos.Course, repos.Enrollment, repos.User, gw, collector),
	}
}
