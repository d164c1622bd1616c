package jobs

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func TestExpireStaleBookings(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id", "status"}).
			AddRow(1, "11111111-1111-1111-1111-111111111111", "REQUESTED").
			AddRow(2, "22222222-2222-2222-2222-222222222222", "REQUESTED"))

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	ExpireStaleBookings(db)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireStaleBookings_SkipsBookingApprovedMidSweep(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id", "status"}).
			AddRow(1, "11111111-1111-1111-1111-111111111111", "REQUESTED").
			AddRow(2, "22222222-2222-2222-2222-222222222222", "REQUESTED"))

	// First booking was approved after the read; its conditional UPDATE
	// matches no rows and the sweep must leave it alone.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ExpireStaleBookings(db)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireStaleBookings_NothingStale(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id", "status"}))

	ExpireStaleBookings(db)

	assert.NoError(t, mock.ExpectationsWereMet())
}
