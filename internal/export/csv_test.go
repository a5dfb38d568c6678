package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/bookings"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/customers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/levels"
)

func TestCustomers(t *testing.T) {
	rows := []customers.Customer{
		{
			ID:        "c_1",
			FirstName: "Sara",
			LastName:  "Ali",
			Email:     "sara@example.com",
			Gender:    "female",
			Points:    120,
			Level:     &levels.Level{Name: "Gold"},
			CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Customers(&buf, rows))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "id", recs[0][0])
	assert.Equal(t, "sara@example.com", recs[1][3])
	assert.Equal(t, "Gold", recs[1][7])
	assert.Equal(t, "false", recs[1][8])
}

func TestBookings_MoneyColumns(t *testing.T) {
	rows := []bookings.Booking{
		{
			ID:            "b_1",
			CustomerID:    "c_1",
			Kind:          bookings.KindAdventure,
			RefTitle:      "Desert Trek",
			Status:        bookings.StatusPaid,
			PaymentType:   bookings.PaymentPartial,
			SubtotalCents: 10000,
			TotalCents:    10000,
			PayNowCents:   3000,
			PaidCents:     3000,
			Currency:      "USD",
			CreatedAt:     time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Bookings(&buf, rows))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "100.00", recs[1][8])
	assert.Equal(t, "30.00", recs[1][9])
}
