package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Vendor struct {
	gorm.Model
	Username     string  `json:"username" gorm:"column:username;unique;not null"`
	Email        string  `json:"email" gorm:"column:email;unique;not null"`
	Password     string  `json:"-" gorm:"-:migration"` // Temporary field for password handling
	PasswordHash string  `json:"-" gorm:"column:password_hash;not null"`
	PhoneNumber  string  `json:"phoneNumber" gorm:"column:phone_number"`
	BusinessName string  `json:"businessName" gorm:"column:business_name"`
	City         string  `json:"city" gorm:"column:city"`
	Points       float64 `json:"points" gorm:"column:points;not null;default:0"`
	FCMToken     string  `json:"-" gorm:"column:fcm_token"`
}

// TableName specifies the table name
func (Vendor) TableName() string {
	return "vendors"
}

func (v *Vendor) HashPassword() error {
	if v.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(v.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	v.PasswordHash = string(hashedPassword)
	return nil
}

func (v *Vendor) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password))
}
