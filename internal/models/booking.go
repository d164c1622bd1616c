package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusRequested      BookingStatus = "REQUESTED"
	BookingStatusApproved       BookingStatus = "APPROVED"
	BookingStatusRejected       BookingStatus = "REJECTED"
	BookingStatusPaymentPending BookingStatus = "PAYMENT_PENDING"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusCompleted      BookingStatus = "COMPLETED"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
	BookingStatusExpired        BookingStatus = "EXPIRED"
)

type BookingType string

const (
	BookingTypeSingleDay BookingType = "SINGLE_DAY"
	BookingTypeMultiDay  BookingType = "MULTI_DAY"
)

// ApprovalWindow is how long a provider has to act on a new request.
const ApprovalWindow = 3 * time.Hour

// Booking is one reservation of a product. All pricing fields are a
// snapshot taken at creation time; later product price changes never
// affect an existing booking.
type Booking struct {
	gorm.Model
	PublicID          string         `json:"publicId" gorm:"column:public_id;type:uuid;uniqueIndex;not null"`
	VendorID          uint           `json:"vendorId" gorm:"not null;index"` // provider
	Vendor            *Vendor        `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	BookedByVendorID  uint           `json:"bookedByVendorId" gorm:"not null;index"` // requester
	BookedByVendor    *Vendor        `json:"bookedByVendor,omitempty" gorm:"foreignKey:BookedByVendorID"`
	ProductID         uint           `json:"productId" gorm:"not null;index"`
	Product           *VendorProduct `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	BookingType       BookingType    `json:"bookingType" gorm:"not null"`
	StartDate         time.Time      `json:"startDate" gorm:"not null"`
	EndDate           time.Time      `json:"endDate" gorm:"not null"`
	StartTime         *string        `json:"startTime,omitempty"` // single-day only
	EndTime           *string        `json:"endTime,omitempty"`   // single-day only
	BasePrice         float64        `json:"basePrice" gorm:"not null"`
	TotalDays         int            `json:"totalDays" gorm:"not null"`
	TotalAmount       float64        `json:"totalAmount" gorm:"not null"`
	CouponCode        *string        `json:"couponCode,omitempty"`
	DiscountAmount    float64        `json:"discountAmount" gorm:"not null;default:0"`
	FinalAmount       float64        `json:"finalAmount" gorm:"not null"`
	AdvanceAmount     float64        `json:"advanceAmount" gorm:"not null"`
	RemainingAmount   float64        `json:"remainingAmount" gorm:"not null"`
	Status            BookingStatus  `json:"status" gorm:"not null;default:'REQUESTED'"`
	ApprovalExpiresAt time.Time      `json:"approvalExpiresAt" gorm:"not null"`
	AdvancePaymentID  *uint          `json:"advancePaymentId,omitempty"`
	Notes             string         `json:"notes,omitempty"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate assigns the public identifier
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.PublicID == "" {
		b.PublicID = uuid.NewString()
	}
	return nil
}
