package models

import (
	"gorm.io/gorm"
)

// Review is the one rating a requester may leave on a completed booking.
// The unique index on BookingID is the enforcement for "at most one review
// per booking", including under concurrent submissions.
type Review struct {
	gorm.Model
	BookingID        uint           `json:"bookingId" gorm:"uniqueIndex;not null"`
	Booking          *Booking       `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	VendorID         uint           `json:"vendorId" gorm:"not null;index"` // provider being reviewed
	ProductID        uint           `json:"productId" gorm:"not null;index"`
	Product          *VendorProduct `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	ReviewerVendorID uint           `json:"reviewerVendorId" gorm:"not null;index"`
	Reviewer         *Vendor        `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerVendorID"`
	Rating           float64        `json:"rating" gorm:"not null"` // 1-5
	Comment          string         `json:"comment,omitempty"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}
