package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "CREATED"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type PaymentPurpose string

const (
	PaymentPurposeAdvance   PaymentPurpose = "advance"
	PaymentPurposeRemaining PaymentPurpose = "remaining"
)

// Payment is one gateway transaction against a booking. Amount is kept in
// minor currency units (cents) the way the gateway reports it. Status only
// moves forward from CREATED to a terminal state.
type Payment struct {
	gorm.Model
	PublicID         string         `json:"publicId" gorm:"column:public_id;type:uuid;uniqueIndex;not null"`
	VendorID         uint           `json:"vendorId" gorm:"not null;index"` // payer
	ProductID        uint           `json:"productId" gorm:"not null;index"`
	BookingID        uint           `json:"bookingId" gorm:"not null;index"`
	Purpose          PaymentPurpose `json:"purpose" gorm:"not null"`
	GatewayOrderID   string         `json:"gatewayOrderId" gorm:"uniqueIndex;not null"`
	GatewayPaymentID string         `json:"gatewayPaymentId"`
	GatewaySignature string         `json:"-"`
	Amount           int64          `json:"amount" gorm:"not null"` // minor units
	Currency         string         `json:"currency" gorm:"not null;default:'KES'"`
	Status           PaymentStatus  `json:"status" gorm:"not null;default:'CREATED'"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate assigns the public identifier
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PublicID == "" {
		p.PublicID = uuid.NewString()
	}
	return nil
}
