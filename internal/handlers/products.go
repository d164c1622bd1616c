package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
)

type CreateProductInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Category       string  `json:"category" binding:"required"`
	SingleDayPrice float64 `json:"singleDayPrice" binding:"required,gt=0"`
	MultiDayPrice  float64 `json:"multiDayPrice" binding:"required,gt=0"`
	AdvanceType    string  `json:"advanceType" binding:"required,oneof=PERCENTAGE FIXED"`
	AdvanceValue   float64 `json:"advanceValue" binding:"required,gt=0"`
}

type UpdateProductInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	SingleDayPrice *float64 `json:"singleDayPrice"`
	MultiDayPrice  *float64 `json:"multiDayPrice"`
	AdvanceType    string   `json:"advanceType"`
	AdvanceValue   *float64 `json:"advanceValue"`
	IsActive       *bool    `json:"isActive"`
}

func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// A percentage advance above 100 would price the deposit higher than the booking
		if input.AdvanceType == string(models.AdvanceTypePercentage) && input.AdvanceValue > 100 {
			c.JSON(400, gin.H{"error": "Percentage advance cannot exceed 100"})
			return
		}

		product := models.VendorProduct{
			VendorID:       vendorID,
			Name:           input.Name,
			Description:    input.Description,
			Category:       input.Category,
			SingleDayPrice: input.SingleDayPrice,
			MultiDayPrice:  input.MultiDayPrice,
			AdvanceType:    models.AdvanceType(input.AdvanceType),
			AdvanceValue:   input.AdvanceValue,
			IsActive:       true,
		}

		if result := db.Create(&product); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create product: " + result.Error.Error()})
			return
		}

		c.JSON(201, gin.H{
			"message": "Product created successfully",
			"product": product,
		})
	}
}

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)
		productID := c.Param("id")

		var product models.VendorProduct
		if result := db.Where("public_id = ?", productID).First(&product); result.Error != nil {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}

		if product.VendorID != vendorID {
			c.JSON(403, gin.H{"error": "You can only update your own products"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if input.Name != "" {
			updates["name"] = input.Name
		}
		if input.Description != "" {
			updates["description"] = input.Description
		}
		if input.Category != "" {
			updates["category"] = input.Category
		}
		if input.SingleDayPrice != nil {
			updates["single_day_price"] = *input.SingleDayPrice
		}
		if input.MultiDayPrice != nil {
			updates["multi_day_price"] = *input.MultiDayPrice
		}
		if input.AdvanceType != "" {
			if input.AdvanceType != string(models.AdvanceTypePercentage) && input.AdvanceType != string(models.AdvanceTypeFixed) {
				c.JSON(400, gin.H{"error": "Invalid advance type"})
				return
			}
			updates["advance_type"] = input.AdvanceType
		}
		if input.AdvanceValue != nil {
			updates["advance_value"] = *input.AdvanceValue
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}

		if len(updates) > 0 {
			if result := db.Model(&product).Updates(updates); result.Error != nil {
				c.JSON(500, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(200, gin.H{
			"message": "Product updated successfully",
			"product": product,
		})
	}
}

// ListProducts returns active listings, optionally filtered by category or city
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.VendorProduct{}).
			Preload("Vendor").
			Where("is_active = ?", true)

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if city := c.Query("city"); city != "" {
			query = query.Joins("JOIN vendors ON vendors.id = vendor_products.vendor_id").
				Where("vendors.city = ?", city)
		}

		var products []models.VendorProduct
		if result := query.Order("rating DESC, created_at DESC").Find(&products); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(200, gin.H{"products": products})
	}
}

func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var product models.VendorProduct
		if result := db.Preload("Vendor").Where("public_id = ?", productID).First(&product); result.Error != nil {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(200, gin.H{"product": product})
	}
}

// GetMyProducts returns the authenticated vendor's own listings, active or not
func GetMyProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		var products []models.VendorProduct
		if result := db.Where("vendor_id = ?", vendorID).Order("created_at DESC").Find(&products); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(200, gin.H{"products": products})
	}
}
