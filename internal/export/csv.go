// Package export renders admin listings as CSV downloads.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/bookings"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/customers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/money"
)

func Customers(w io.Writer, rows []customers.Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "first_name", "last_name", "email", "phone", "gender", "points", "level", "suspended", "created_at"}); err != nil {
		return err
	}
	for _, c := range rows {
		levelName := ""
		if c.Level != nil {
			levelName = c.Level.Name
		}
		rec := []string{
			c.ID,
			c.FirstName,
			c.LastName,
			c.Email,
			c.Phone,
			c.Gender,
			strconv.Itoa(c.Points),
			levelName,
			strconv.FormatBool(c.Suspended),
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func Coupons(w io.Writer, rows []coupons.Coupon) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "code", "type", "percent_off", "amount", "scope", "customer_id", "status", "expires_at", "created_at"}); err != nil {
		return err
	}
	for _, c := range rows {
		custID := ""
		if c.CustomerID != nil {
			custID = *c.CustomerID
		}
		expires := ""
		if c.ExpiresAt != nil {
			expires = c.ExpiresAt.Format(time.RFC3339)
		}
		rec := []string{
			c.ID,
			c.Code,
			c.Type,
			strconv.Itoa(c.PercentOff),
			money.Decimal(c.AmountCents),
			c.Scope,
			custID,
			c.Status,
			expires,
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func Bookings(w io.Writer, rows []bookings.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "customer_id", "kind", "ref_title", "status", "payment_type", "subtotal", "discount", "total", "pay_now", "paid", "currency", "created_at"}); err != nil {
		return err
	}
	for _, b := range rows {
		rec := []string{
			b.ID,
			b.CustomerID,
			b.Kind,
			b.RefTitle,
			b.Status,
			b.PaymentType,
			money.Decimal(b.SubtotalCents),
			money.Decimal(b.DiscountCents),
			money.Decimal(b.TotalCents),
			money.Decimal(b.PayNowCents),
			money.Decimal(b.PaidCents),
			b.Currency,
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func Invoices(w io.Writer, rows []bookings.Invoice) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "number", "booking_id", "amount", "currency", "issued_at"}); err != nil {
		return err
	}
	for _, inv := range rows {
		rec := []string{
			inv.ID,
			inv.Number,
			inv.BookingID,
			money.Decimal(inv.AmountCents),
			inv.Currency,
			inv.IssuedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
