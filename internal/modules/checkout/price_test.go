package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
)

func TestBuildQuote_NoExtras(t *testing.T) {
	q := BuildQuote(10000, nil, nil, false)

	assert.Equal(t, int64(10000), q.SubtotalCents)
	assert.Equal(t, int64(0), q.DiscountCents)
	assert.Equal(t, int64(10000), q.TotalCents)
	assert.Equal(t, int64(10000), q.PayNowCents)
	assert.Equal(t, int64(0), q.RemainingCents)
}

func TestBuildQuote_AddOns(t *testing.T) {
	q := BuildQuote(10000, []int64{2500, 1500}, nil, false)

	assert.Equal(t, int64(14000), q.SubtotalCents)
	assert.Equal(t, int64(14000), q.TotalCents)
}

func TestBuildQuote_PercentageCoupon(t *testing.T) {
	// 20% off a 100.00 subtotal -> discount 20.00, total 80.00
	cpn := &coupons.Coupon{Type: coupons.TypePercentage, PercentOff: 20}
	q := BuildQuote(10000, nil, cpn, false)

	assert.Equal(t, int64(2000), q.DiscountCents)
	assert.Equal(t, int64(8000), q.TotalCents)
}

func TestBuildQuote_FixedCoupon(t *testing.T) {
	cpn := &coupons.Coupon{Type: coupons.TypeFixed, AmountCents: 3000}
	q := BuildQuote(10000, []int64{2000}, cpn, false)

	assert.Equal(t, int64(12000), q.SubtotalCents)
	assert.Equal(t, int64(3000), q.DiscountCents)
	assert.Equal(t, int64(9000), q.TotalCents)
}

func TestBuildQuote_PartialSplit(t *testing.T) {
	q := BuildQuote(10000, nil, nil, true)

	assert.Equal(t, int64(3000), q.PayNowCents)
	assert.Equal(t, int64(7000), q.RemainingCents)
}

func TestBuildQuote_PartialSplitSumsExactly(t *testing.T) {
	// pay-now + remaining == total for totals that don't divide evenly
	for _, total := range []int64{1, 7, 99, 101, 3333, 999999} {
		q := BuildQuote(total, nil, nil, true)
		assert.Equal(t, q.TotalCents, q.PayNowCents+q.RemainingCents, "total=%d", total)
		assert.Equal(t, total*PartialPayPercent/100, q.PayNowCents, "total=%d", total)
	}
}

func TestBuildQuote_Deterministic(t *testing.T) {
	cpn := &coupons.Coupon{Type: coupons.TypePercentage, PercentOff: 15}
	a := BuildQuote(45000, []int64{5000}, cpn, true)
	b := BuildQuote(45000, []int64{5000}, cpn, true)

	assert.Equal(t, a, b)
}

func TestBuildQuote_CouponRemovedRestoresDiscount(t *testing.T) {
	cpn := &coupons.Coupon{Type: coupons.TypePercentage, PercentOff: 20}
	with := BuildQuote(10000, nil, cpn, false)
	without := BuildQuote(10000, nil, nil, false)

	assert.Equal(t, int64(2000), with.DiscountCents)
	assert.Equal(t, int64(0), without.DiscountCents)
	assert.Equal(t, without.SubtotalCents, with.SubtotalCents)
}
