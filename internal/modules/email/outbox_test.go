package email

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/mailer"
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

func outboxRow(attempts int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "to_addr", "subject", "text_body", "html_body", "status", "attempts", "last_error", "created_at", "sent_at"}).
		AddRow("em-1", "nadia@example.com", "Booking received", "hi", "", StatusQueued, attempts, nil, time.Now(), nil)
}

func expectClaim(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `email_outbox` WHERE status = ? ORDER BY created_at asc LIMIT ? FOR UPDATE SKIP LOCKED",
	)).WithArgs(StatusQueued, sqlmock.AnyArg()).
		WillReturnRows(rows)
	// the claim parks the row as sending so a second worker can't grab it
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `email_outbox` SET `attempts`=attempts + 1,`status`=? WHERE id IN (?)",
	)).WithArgs(StatusSending, "em-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestDrainOnce_ClaimsAsSendingAndDelivers(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	m := &mailer.Mock{}
	svc := NewOutboxService(db, m, "noreply@tripora.example", slog.Default())

	expectClaim(mock, outboxRow(0))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `email_outbox` SET `last_error`=?,`sent_at`=?,`status`=? WHERE id = ?",
	)).WithArgs(nil, sqlmock.AnyArg(), StatusSent, "em-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DrainOnce(context.Background(), 20))

	assert.Equal(t, 1, m.SentCount())
	assert.Equal(t, []string{"nadia@example.com"}, m.Sent[0].To)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDrainOnce_FailedSendRequeues(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	m := &mailer.Mock{Err: errors.New("smtp down")}
	svc := NewOutboxService(db, m, "noreply@tripora.example", slog.Default())

	expectClaim(mock, outboxRow(0))

	// first failure: back to queued for the next drain
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `email_outbox` SET `last_error`=?,`status`=? WHERE id = ?",
	)).WithArgs("smtp down", StatusQueued, "em-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DrainOnce(context.Background(), 20))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDrainOnce_EmptyQueue(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	m := &mailer.Mock{}
	svc := NewOutboxService(db, m, "noreply@tripora.example", slog.Default())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `email_outbox` WHERE status = ? ORDER BY created_at asc LIMIT ? FOR UPDATE SKIP LOCKED",
	)).WithArgs(StatusQueued, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	require.NoError(t, svc.DrainOnce(context.Background(), 20))
	assert.Equal(t, 0, m.SentCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}
