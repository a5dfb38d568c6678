package checkout

import (
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
)

// PartialPayPercent is the share of the total collected up front when the
// customer chooses a partial payment. The remainder is settled later.
const PartialPayPercent = 30

// Quote is the price breakdown for a booking, in cents. The server computes
// it both for the preview endpoint and for the authoritative charge, so the
// two can never drift.
type Quote struct {
	SubtotalCents  int64 `json:"subtotal_cents"`
	DiscountCents  int64 `json:"discount_cents"`
	TotalCents     int64 `json:"total_cents"`
	PayNowCents    int64 `json:"pay_now_cents"`
	RemainingCents int64 `json:"remaining_cents"`
}

// BuildQuote prices a selection. Pure and deterministic: the same inputs
// always produce the same quote. The remaining amount is derived by
// subtraction so pay-now + remaining equals the total exactly.
func BuildQuote(baseCents int64, addOnCents []int64, cpn *coupons.Coupon, partial bool) Quote {
	subtotal := baseCents
	for _, c := range addOnCents {
		subtotal += c
	}

	var discount int64
	if cpn != nil {
		discount = cpn.DiscountCents(subtotal)
	}

	total := subtotal - discount

	payNow := total
	if partial {
		payNow = total * PartialPayPercent / 100
	}

	return Quote{
		SubtotalCents:  subtotal,
		DiscountCents:  discount,
		TotalCents:     total,
		PayNowCents:    payNow,
		RemainingCents: total - payNow,
	}
}
