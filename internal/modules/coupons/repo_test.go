package coupons

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	gdb, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock, sqlDB
}

func TestRepo_FindByCode(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewRepo(db)

	rows := sqlmock.NewRows([]string{"id", "code", "type", "percent_off", "amount_cents", "scope", "customer_id", "status", "expires_at", "created_at", "updated_at"}).
		AddRow("cpn-1", "WELCOME10", TypePercentage, 10, 0, ScopeAdventure, nil, StatusActive, nil, time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `coupons` WHERE code = ? ORDER BY `coupons`.`id` LIMIT ?",
	)).WithArgs("WELCOME10", sqlmock.AnyArg()).
		WillReturnRows(rows)

	c, err := repo.FindByCode(context.Background(), "WELCOME10")
	require.NoError(t, err)
	assert.Equal(t, "cpn-1", c.ID)
	assert.Equal(t, 10, c.PercentOff)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UpdateStatus_Guarded(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewRepo(db)

	// map updates keep alphabetical column order
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `coupons` SET `status`=?,`updated_at`=? WHERE id = ? AND status = ?",
	)).WithArgs(StatusRedeemed, sqlmock.AnyArg(), "cpn-1", StatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.UpdateStatus(context.Background(), "cpn-1", StatusActive, StatusRedeemed)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UpdateStatus_NoMatch(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewRepo(db)

	// already redeemed elsewhere: zero rows, no error
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `coupons` SET `status`=?,`updated_at`=? WHERE id = ? AND status = ?",
	)).WithArgs(StatusRevoked, sqlmock.AnyArg(), "cpn-2", StatusActive).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.UpdateStatus(context.Background(), "cpn-2", StatusActive, StatusRevoked)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
