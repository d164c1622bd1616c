package handlers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func bookingRouter(db *gorm.DB, vendorID uint) *gin.Engine {
	r := gin.New()
	r.POST("/bookings", authAs(vendorID), CreateBooking(db, nil))
	return r
}

func TestCreateBooking_MissingFields(t *testing.T) {
	db, mock := newTestDB(t)
	router := bookingRouter(db, 1)

	// Missing fields fail before any lookup happens
	w := performJSON(t, router, "POST", "/bookings", gin.H{"startDate": "2025-06-10"})
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Product ID and start date are required", responseBody(t, w)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_ProductNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	router := bookingRouter(db, 1)

	mock.ExpectQuery(`SELECT \* FROM "vendor_products"`).
		WillReturnError(gorm.ErrRecordNotFound)

	w := performJSON(t, router, "POST", "/bookings", gin.H{
		"productId": "11111111-1111-1111-1111-111111111111",
		"startDate": "2025-06-10",
	})
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "Product not found", responseBody(t, w)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_SelfBookingForbidden(t *testing.T) {
	db, mock := newTestDB(t)
	router := bookingRouter(db, 7)

	// Product owned by the requester itself
	mock.ExpectQuery(`SELECT \* FROM "vendor_products"`).
		WillReturnRows(productRows(10, 7, "11111111-1111-1111-1111-111111111111", 5000, 2000))

	w := performJSON(t, router, "POST", "/bookings", gin.H{
		"productId": "11111111-1111-1111-1111-111111111111",
		"startDate": "2025-06-10",
	})
	assert.Equal(t, 403, w.Code)
	assert.Equal(t, "You cannot book your own product", responseBody(t, w)["error"])

	// No booking row may be written
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	db, mock := newTestDB(t)
	router := bookingRouter(db, 1)

	mock.ExpectQuery(`SELECT \* FROM "vendor_products"`).
		WillReturnRows(productRows(10, 2, "11111111-1111-1111-1111-111111111111", 5000, 2000))

	w := performJSON(t, router, "POST", "/bookings", gin.H{
		"productId": "11111111-1111-1111-1111-111111111111",
		"startDate": "2025-06-12",
		"endDate":   "2025-06-10",
	})
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "End date cannot be before start date", responseBody(t, w)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_MultiDaySuccess(t *testing.T) {
	db, mock := newTestDB(t)
	router := bookingRouter(db, 1)

	mock.ExpectQuery(`SELECT \* FROM "vendor_products"`).
		WillReturnRows(productRows(10, 2, "11111111-1111-1111-1111-111111111111", 5000, 2000))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	w := performJSON(t, router, "POST", "/bookings", gin.H{
		"productId": "11111111-1111-1111-1111-111111111111",
		"startDate": "2025-06-10",
		"endDate":   "2025-06-12",
	})
	assert.Equal(t, 201, w.Code)

	body := responseBody(t, w)
	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, "MULTI_DAY", booking["bookingType"])
	assert.Equal(t, 3.0, booking["totalDays"])
	assert.Equal(t, 6000.0, booking["totalAmount"])
	assert.Equal(t, 6000.0, booking["finalAmount"])
	assert.Equal(t, 1800.0, booking["advanceAmount"])
	assert.Equal(t, 4200.0, booking["remainingAmount"])
	assert.Equal(t, "REQUESTED", booking["status"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_SingleDayKeepsTimeWindow(t *testing.T) {
	db, mock := newTestDB(t)
	router := bookingRouter(db, 1)

	mock.ExpectQuery(`SELECT \* FROM "vendor_products"`).
		WillReturnRows(productRows(10, 2, "11111111-1111-1111-1111-111111111111", 5000, 2000))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	w := performJSON(t, router, "POST", "/bookings", gin.H{
		"productId": "11111111-1111-1111-1111-111111111111",
		"startDate": "2025-06-10",
		"startTime": "14:00",
		"endTime":   "20:00",
	})
	assert.Equal(t, 201, w.Code)

	booking := responseBody(t, w)["booking"].(map[string]interface{})
	assert.Equal(t, "SINGLE_DAY", booking["bookingType"])
	assert.Equal(t, 5000.0, booking["totalAmount"])
	assert.Equal(t, "14:00", booking["startTime"])
	assert.Equal(t, "20:00", booking["endTime"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
