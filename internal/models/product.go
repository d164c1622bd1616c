package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdvanceType string

const (
	AdvanceTypePercentage AdvanceType = "PERCENTAGE"
	AdvanceTypeFixed      AdvanceType = "FIXED"
)

// VendorProduct is a bookable listing (venue, catering package, photography
// package, sound setup) owned by a vendor.
type VendorProduct struct {
	gorm.Model
	PublicID       string      `json:"publicId" gorm:"column:public_id;type:uuid;uniqueIndex;not null"`
	VendorID       uint        `json:"vendorId" gorm:"not null;index"`
	Vendor         *Vendor     `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Name           string      `json:"name" gorm:"not null"`
	Description    string      `json:"description"`
	Category       string      `json:"category" gorm:"index"`
	SingleDayPrice float64     `json:"singleDayPrice" gorm:"not null"`
	MultiDayPrice  float64     `json:"multiDayPrice" gorm:"not null"` // per day
	AdvanceType    AdvanceType `json:"advanceType" gorm:"not null;default:'PERCENTAGE'"`
	AdvanceValue   float64     `json:"advanceValue" gorm:"not null;default:30"`
	Rating         float64     `json:"rating" gorm:"not null;default:0"` // running average, one decimal
	RatingCount    int         `json:"ratingCount" gorm:"not null;default:0"`
	IsActive       bool        `json:"isActive" gorm:"not null;default:true"`
}

// TableName specifies the table name
func (VendorProduct) TableName() string {
	return "vendor_products"
}

// BeforeCreate assigns the public identifier
func (p *VendorProduct) BeforeCreate(tx *gorm.DB) error {
	if p.PublicID == "" {
		p.PublicID = uuid.NewString()
	}
	return nil
}
