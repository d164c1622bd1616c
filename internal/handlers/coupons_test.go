package handlers

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func couponRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.POST("/coupons/apply", authAs(1), ApplyCoupon(db))
	return r
}

func couponRows(code, discountType string, value float64, minAmount, maxDiscount *float64, isActive bool, expiresAt *time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "discount_type", "value", "min_amount", "max_discount", "is_active", "expires_at",
	}).AddRow(1, code, discountType, value, minAmount, maxDiscount, isActive, expiresAt)
}

func TestApplyCoupon_UnknownCode(t *testing.T) {
	db, mock := newTestDB(t)
	router := couponRouter(db)

	mock.ExpectQuery(`SELECT \* FROM "coupons"`).
		WillReturnError(gorm.ErrRecordNotFound)

	w := performJSON(t, router, "POST", "/coupons/apply", gin.H{
		"code":        "NOSUCHCODE",
		"orderAmount": 1000,
	})
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "Invalid coupon code", responseBody(t, w)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCoupon_InactiveCode(t *testing.T) {
	db, mock := newTestDB(t)
	router := couponRouter(db)

	mock.ExpectQuery(`SELECT \* FROM "coupons"`).
		WillReturnRows(couponRows("KARIBU10", "PERCENT", 10, nil, nil, false, nil))

	w := performJSON(t, router, "POST", "/coupons/apply", gin.H{
		"code":        "KARIBU10",
		"orderAmount": 1000,
	})
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "Invalid coupon code", responseBody(t, w)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCoupon_Expired(t *testing.T) {
	db, mock := newTestDB(t)
	router := couponRouter(db)

	expired := time.Now().Add(-24 * time.Hour)
	mock.ExpectQuery(`SELECT \* FROM "coupons"`).
		WillReturnRows(couponRows("KARIBU10", "PERCENT", 10, nil, nil, true, &expired))

	w := performJSON(t, router, "POST", "/coupons/apply", gin.H{
		"code":        "KARIBU10",
		"orderAmount": 1000,
	})
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Coupon has expired", responseBody(t, w)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCoupon_BelowMinimum(t *testing.T) {
	db, mock := newTestDB(t)
	router := couponRouter(db)

	minAmount := 5000.0
	mock.ExpectQuery(`SELECT \* FROM "coupons"`).
		WillReturnRows(couponRows("KARIBU10", "PERCENT", 10, &minAmount, nil, true, nil))

	w := performJSON(t, router, "POST", "/coupons/apply", gin.H{
		"code":        "KARIBU10",
		"orderAmount": 1000,
	})
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Order amount is below the coupon minimum", responseBody(t, w)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCoupon_UptoCappedDiscount(t *testing.T) {
	db, mock := newTestDB(t)
	router := couponRouter(db)

	maxDiscount := 40.0
	mock.ExpectQuery(`SELECT \* FROM "coupons"`).
		WillReturnRows(couponRows("MEGA90", "UPTO", 90, nil, &maxDiscount, true, nil))

	w := performJSON(t, router, "POST", "/coupons/apply", gin.H{
		"code":        "mega90",
		"orderAmount": 1000,
	})
	assert.Equal(t, 200, w.Code)

	body := responseBody(t, w)
	assert.Equal(t, "MEGA90", body["code"])
	assert.Equal(t, 40.0, body["discountAmount"])
	assert.Equal(t, 960.0, body["finalAmount"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
