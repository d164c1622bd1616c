package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// authAs injects an authenticated vendor the way the auth middleware would
func authAs(vendorID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("vendorId", vendorID)
		c.Set("username", "testvendor")
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func responseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func productRows(id uint, vendorID uint, publicID string, singleDay, multiDay float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "vendor_id", "public_id", "name", "category",
		"single_day_price", "multi_day_price", "advance_type", "advance_value",
		"rating", "rating_count", "is_active",
	}).AddRow(id, vendorID, publicID, "Garden Venue", "venues",
		singleDay, multiDay, "PERCENTAGE", 30.0, 0.0, 0, true)
}
