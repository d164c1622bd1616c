package models

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypeFlat    DiscountType = "FLAT"
	DiscountTypePercent DiscountType = "PERCENT"
	DiscountTypeUpto    DiscountType = "UPTO"
)

// Coupon is a named discount rule. Codes are stored uppercase and looked
// up case-insensitively. MaxDiscount is only meaningful for UPTO coupons.
type Coupon struct {
	gorm.Model
	Code         string       `json:"code" gorm:"uniqueIndex;not null"`
	DiscountType DiscountType `json:"discountType" gorm:"not null"`
	Value        float64      `json:"value" gorm:"not null"`
	MinAmount    *float64     `json:"minAmount,omitempty"`
	MaxDiscount  *float64     `json:"maxDiscount,omitempty"`
	IsActive     bool         `json:"isActive" gorm:"not null;default:true"`
	ExpiresAt    *time.Time   `json:"expiresAt,omitempty"`
}

// TableName specifies the table name
func (Coupon) TableName() string {
	return "coupons"
}
