package checkout

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/bookings"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/payments"
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

type downProvider struct{}

func (downProvider) Name() string { return "hosted-pay" }

func (downProvider) CreateSession(context.Context, payments.CreateSessionRequest) (payments.Session, error) {
	return payments.Session{}, payments.ErrProviderDown
}

type okProvider struct{}

func (okProvider) Name() string { return "hosted-pay" }

func (okProvider) CreateSession(context.Context, payments.CreateSessionRequest) (payments.Session, error) {
	return payments.Session{ID: "sess_1", PaymentURL: "https://pay.example/sess_1"}, nil
}

func pendingBooking() bookings.Booking {
	return bookings.Booking{
		ID:            "bkg-1",
		CustomerID:    "cust-1",
		Kind:          bookings.KindAdventure,
		RefID:         "adv-1",
		RefTitle:      "Desert Safari",
		Status:        bookings.StatusPending,
		SubtotalCents: 10000,
		DiscountCents: 2000,
		TotalCents:    8000,
		PayNowCents:   2400,
		Currency:      "USD",
	}
}

// A provider outage must roll back the booking and the coupon redemption,
// leaving the coupon active for the next attempt.
func TestFinalize_ProviderDownRollsBack(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	svc := &Service{db: db, provider: downProvider{}, baseURL: "https://tripora.example", logger: slog.Default()}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `coupons` SET `status`=?,`updated_at`=? WHERE id = ? AND status = ?",
	)).WithArgs(coupons.StatusRedeemed, sqlmock.AnyArg(), "cpn-1", coupons.StatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	cpn := &coupons.Coupon{ID: "cpn-1", Status: coupons.StatusActive}
	_, err := svc.finalize(context.Background(), pendingBooking(), BuildQuote(10000, nil, cpn, true), cpn, true)

	require.ErrorIs(t, err, payments.ErrProviderDown)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// If the payment row can't be written the booking must not survive either:
// a committed booking with no provider_ref is invisible to the webhook.
func TestFinalize_PaymentRowFailureRollsBack(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	svc := &Service{db: db, provider: okProvider{}, baseURL: "https://tripora.example", logger: slog.Default()}

	boom := errors.New("insert failed")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := svc.finalize(context.Background(), pendingBooking(), BuildQuote(10000, nil, nil, false), nil, false)

	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
