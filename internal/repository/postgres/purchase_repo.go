package postgres

import (
	"context"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *purchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.CoursePurchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CoursePurchase, error) {
	var purchase domain.CoursePurchase
	err := r.db.WithContext(ctx).
		Preload("Course").
		First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) GetByGatewayOrderID(ctx context.Context, orderID string) (*domain.CoursePurchase, error) {
	var purchase domain.CoursePurchase
	err := r.db.WithContext(ctx).
		First(&purchase, "gateway_order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*domain.CoursePurchase, error) {
	var purchase domain.CoursePurchase
	err := r.db.WithContext(ctx).
		First(&purchase, "gateway_payment_id = ?", paymentID).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) GetCompletedByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.CoursePurchase, error) {
	var purchase domain.CoursePurchase
	err := r.db.WithContext(ctx).
		First(&purchase, "user_id = ? AND course_id = ? AND status = ?", userID, courseID, domain.PurchaseCompleted).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.CoursePurchase, error) {
	var purchases []*domain.CoursePurchase
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepository) SetGatewayOrderID(ctx context.Context, id uuid.UUID, orderID string) error {
	return r.db.WithContext(ctx).
		Model(&domain.CoursePurchase{}).
		Where("id = ?", id).
		Update("gateway_order_id", orderID).Error
}

// UpdateStatus runs a single conditional UPDATE: the row changes only if its
// status still equals `from`. The boolean result reports whether the
// transition happened, which is how callers detect a lost race rather than
// re-reading and re-writing.
func (r *purchaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PurchaseStatus, set map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range set {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).
		Model(&domain.CoursePurchase{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
