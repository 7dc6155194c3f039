package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseFailed    PurchaseStatus = "failed"
	PurchaseRefunded  PurchaseStatus = "refunded"
)

// CoursePurchase is the ledger record for one checkout attempt. Amount is in
// minor currency units (paise for INR). GatewayOrderID is assigned once the
// gateway accepts the order; GatewayPaymentID only once verification completes.
type CoursePurchase struct {
	ID               uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CourseID         uuid.UUID         `json:"courseId" gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID         `json:"userId" gorm:"type:uuid;not null;index"`
	Amount           int64             `json:"amount" gorm:"not null"`
	Currency         string            `json:"currency" gorm:"type:varchar(10);not null;default:'INR'"`
	Status           PurchaseStatus    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	// default:null keeps unset ids out of the unique indexes: gorm skips
	// zero-valued fields carrying a default, so the column stays NULL until
	// the gateway assigns an id.
	GatewayOrderID   string            `json:"gatewayOrderId" gorm:"type:varchar(100);uniqueIndex;default:null"`
	GatewayPaymentID string            `json:"gatewayPaymentId" gorm:"type:varchar(100);uniqueIndex;default:null"`
	PaymentMethod    string            `json:"paymentMethod" gorm:"type:varchar(50)"`
	RefundID         string            `json:"refundId,omitempty" gorm:"type:varchar(100)"`
	RefundAmount     int64             `json:"refundAmount,omitempty"`
	RefundReason     string            `json:"refundReason,omitempty"`
	Metadata         datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
