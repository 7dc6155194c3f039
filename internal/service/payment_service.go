package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/arjunm/coursehub/internal/gateway"
	"github.com/arjunm/coursehub/internal/metrics"
	"github.com/arjunm/coursehub/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentGateway is the slice of the gateway client the payment service needs;
// tests substitute a fake.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type PaymentService struct {
	purchaseRepo   repository.PurchaseRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	userRepo       repository.UserRepository
	gateway        PaymentGateway
	metrics        *metrics.Collector
}

func NewPaymentService(
	purchaseRepo repository.PurchaseRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	userRepo repository.UserRepository,
	gw PaymentGateway,
	collector *metrics.Collector,
) *PaymentService {
	return &PaymentService{
		purchaseRepo:   purchaseRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		gateway:        gw,
		metrics:        collector,
	}
}

type OrderResult struct {
	Purchase *domain.CoursePurchase
	Order    *gateway.Order
	Course   *domain.Course
}

// MinorUnits converts a price in major currency units to the gateway's minor
// units (499.00 -> 49900). Rounded, not truncated, so 499.00 stored as
// 498.99999... still yields 49900.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateOrder opens a pending ledger record and reserves a gateway order for
// it. If the gateway call fails the pending record stays without an order id;
// such orphans are acceptable and never complete.
func (s *PaymentService) CreateOrder(ctx context.Context, courseID, userID uuid.UUID) (*OrderResult, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished {
		return nil, domain.ErrCourseNotFound
	}

	if _, err := s.purchaseRepo.GetCompletedByUserAndCourse(ctx, userID, courseID); err == nil {
		return nil, domain.ErrAlreadyPurchased
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	purchase := &domain.CoursePurchase{
		ID:       uuid.New(),
		CourseID: courseID,
		UserID:   userID,
		Amount:   MinorUnits(course.Price),
		Currency: course.Currency,
		Status:   domain.PurchasePending,
		Metadata: datatypes.JSONMap{
			"courseId": courseID.String(),
			"userId":   userID.String(),
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   purchase.Amount,
		Currency: purchase.Currency,
		Receipt:  fmt.Sprintf("course_%s", courseID),
		Notes: map[string]string{
			"courseId": courseID.String(),
			"userId":   userID.String(),
		},
	})
	if err != nil {
		log.Printf("ERROR [service.Payment] gateway order create failed for purchase %s: %v", purchase.ID, err)
		return nil, err
	}

	if err := s.purchaseRepo.SetGatewayOrderID(ctx, purchase.ID, order.ID); err != nil {
		return nil, err
	}
	purchase.GatewayOrderID = order.ID

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}

	return &OrderResult{Purchase: purchase, Order: order, Course: course}, nil
}

// VerifyPayment is the only path that can mark a purchase completed. The
// signature check runs before any ledger access, and the pending->completed
// transition is a conditional update so a concurrent duplicate callback loses
// the race instead of double-applying.
func (s *PaymentService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*domain.CoursePurchase, error) {
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		if s.metrics != nil {
			s.metrics.RecordVerification("signature_mismatch")
		}
		return nil, domain.ErrVerificationFailed
	}

	purchase, err := s.purchaseRepo.GetByGatewayOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.metrics != nil {
				s.metrics.RecordVerification("not_found")
			}
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}

	ok, err := s.purchaseRepo.UpdateStatus(ctx, purchase.ID, domain.PurchasePending, domain.PurchaseCompleted, map[string]interface{}{
		"gateway_payment_id": paymentID,
		"updated_at":         time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordVerification("conflict")
		}
		return nil, domain.ErrPurchaseNotPending
	}

	if err := s.enrollmentRepo.Create(ctx, &domain.Enrollment{
		ID:         uuid.New(),
		UserID:     purchase.UserID,
		CourseID:   purchase.CourseID,
		EnrolledAt: time.Now(),
	}); err != nil {
		log.Printf("ERROR [service.Payment] failed to enroll user %s in course %s: %v", purchase.UserID, purchase.CourseID, err)
	}

	if s.metrics != nil {
		s.metrics.RecordVerification("success")
	}

	return s.purchaseRepo.GetByID(ctx, purchase.ID)
}

// Refund moves a completed purchase to refunded. Only the purchaser or an
// admin may refund.
func (s *PaymentService) Refund(ctx context.Context, purchaseID, actorID uuid.UUID, reason string) (*domain.CoursePurchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}

	if purchase.UserID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil || actor.Role != domain.RoleAdmin {
			return nil, domain.ErrPurchaseNotFound
		}
	}

	ok, err := s.purchaseRepo.UpdateStatus(ctx, purchase.ID, domain.PurchaseCompleted, domain.PurchaseRefunded, map[string]interface{}{
		"refund_amount": purchase.Amount,
		"refund_reason": reason,
		"updated_at":    time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPurchaseNotCompleted
	}

	return s.purchaseRepo.GetByID(ctx, purchase.ID)
}

// MarkFailed records a checkout the client reported as failed. Terminal unless
// the user starts over with a new order.
func (s *PaymentService) MarkFailed(ctx context.Context, orderID string, actorID uuid.UUID) (*domain.CoursePurchase, error) {
	purchase, err := s.purchaseRepo.GetByGatewayOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}

	if purchase.UserID != actorID {
		return nil, domain.ErrPurchaseNotFound
	}

	ok, err := s.purchaseRepo.UpdateStatus(ctx, purchase.ID, domain.PurchasePending, domain.PurchaseFailed, map[string]interface{}{
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPurchaseNotPending
	}

	return s.purchaseRepo.GetByID(ctx, purchase.ID)
}

func (s *PaymentService) ListPurchases(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.CoursePurchase, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.purchaseRepo.ListByUserID(ctx, userID, limit, offset)
}
