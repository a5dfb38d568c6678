package coupons

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountCents_Percentage(t *testing.T) {
	c := Coupon{Type: TypePercentage, PercentOff: 20}

	// 20% off 100.00 -> 20.00
	assert.Equal(t, int64(2000), c.DiscountCents(10000))
	assert.Equal(t, int64(0), c.DiscountCents(0))
}

func TestDiscountCents_Fixed(t *testing.T) {
	c := Coupon{Type: TypeFixed, AmountCents: 1500}

	assert.Equal(t, int64(1500), c.DiscountCents(10000))
	// capped at the subtotal
	assert.Equal(t, int64(900), c.DiscountCents(900))
}

func TestDiscountCents_UnknownType(t *testing.T) {
	c := Coupon{Type: "bogus", PercentOff: 50, AmountCents: 5000}
	assert.Equal(t, int64(0), c.DiscountCents(10000))
}

func TestUsable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, Coupon{Status: StatusActive}.Usable(now))
	assert.True(t, Coupon{Status: StatusActive, ExpiresAt: &future}.Usable(now))
	assert.False(t, Coupon{Status: StatusActive, ExpiresAt: &past}.Usable(now))
	assert.False(t, Coupon{Status: StatusRevoked}.Usable(now))
	assert.False(t, Coupon{Status: StatusRedeemed}.Usable(now))
}

func TestNewCode_Shape(t *testing.T) {
	code := newCode()
	assert.Len(t, code, 15) // TJA-XXXXX-XXXXX
	assert.Equal(t, "TJA-", code[:4])
	assert.NotEqual(t, newCode(), code)
}
