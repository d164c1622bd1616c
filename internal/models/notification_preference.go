package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationPreference represents a vendor's notification preferences
type NotificationPreference struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	VendorID  uint           `gorm:"uniqueIndex;not null" json:"vendorId"`
	Vendor    Vendor         `gorm:"foreignKey:VendorID" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// General push notification toggle
	PushEnabled bool `gorm:"column:push_enabled;default:true" json:"pushEnabled"`

	// Specific notification preferences
	BookingAlerts   bool `gorm:"column:booking_alerts;default:true" json:"bookingAlerts"`
	PaymentAlerts   bool `gorm:"column:payment_alerts;default:true" json:"paymentAlerts"`
	ReviewAlerts    bool `gorm:"column:review_alerts;default:true" json:"reviewAlerts"`
	EmailEnabled    bool `gorm:"column:email_enabled;default:true" json:"emailEnabled"`
}

// TableName specifies the table name for NotificationPreference
func (NotificationPreference) TableName() string {
	return "notification_preferences"
}

// DefaultPreferences returns default notification preferences for a new vendor
func DefaultPreferences(vendorID uint) *NotificationPreference {
	return &NotificationPreference{
		VendorID:      vendorID,
		PushEnabled:   true,
		BookingAlerts: true,
		PaymentAlerts: true,
		ReviewAlerts:  true,
		EmailEnabled:  true,
	}
}
