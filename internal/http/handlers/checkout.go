package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/checkout"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/payments"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
)

type CheckoutHandler struct {
	Svc *checkout.Service
}

type bookAdventureRequest struct {
	AdventureID string   `json:"adventure_id" binding:"required"`
	AddOnIDs    []string `json:"add_on_ids"`
	CouponCode  string   `json:"coupon_code"`
	Partial     bool     `json:"partial"`
}

type bookConsultationRequest struct {
	PackageID  string `json:"package_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
	Partial    bool   `json:"partial"`
}

// POST /api/book/adventure/preview
func (h *CheckoutHandler) PreviewAdventure(c *gin.Context) {
	var req bookAdventureRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	q, err := h.Svc.PreviewAdventure(c.Request.Context(), claims.Subject, checkout.BookAdventureInput{
		AdventureID: req.AdventureID,
		AddOnIDs:    req.AddOnIDs,
		CouponCode:  req.CouponCode,
		Partial:     req.Partial,
	})
	if err != nil {
		failCheckout(c, err)
		return
	}
	render.Data(c, q)
}

// POST /api/book/consultation/preview
func (h *CheckoutHandler) PreviewConsultation(c *gin.Context) {
	var req bookConsultationRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	q, err := h.Svc.PreviewConsultation(c.Request.Context(), claims.Subject, checkout.BookConsultationInput{
		PackageID:  req.PackageID,
		CouponCode: req.CouponCode,
		Partial:    req.Partial,
	})
	if err != nil {
		failCheckout(c, err)
		return
	}
	render.Data(c, q)
}

// POST /api/book/adventure
func (h *CheckoutHandler) BookAdventure(c *gin.Context) {
	var req bookAdventureRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	res, err := h.Svc.BookAdventure(c.Request.Context(), claims.Subject, checkout.BookAdventureInput{
		AdventureID: req.AdventureID,
		AddOnIDs:    req.AddOnIDs,
		CouponCode:  req.CouponCode,
		Partial:     req.Partial,
	})
	if err != nil {
		failCheckout(c, err)
		return
	}
	renderBooked(c, res)
}

// POST /api/book/consultation
func (h *CheckoutHandler) BookConsultation(c *gin.Context) {
	var req bookConsultationRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	res, err := h.Svc.BookConsultation(c.Request.Context(), claims.Subject, checkout.BookConsultationInput{
		PackageID:  req.PackageID,
		CouponCode: req.CouponCode,
		Partial:    req.Partial,
	})
	if err != nil {
		failCheckout(c, err)
		return
	}
	renderBooked(c, res)
}

// The dashboard redirects to session.PaymentURL, so the session object sits
// at the top level of the response.
func renderBooked(c *gin.Context, res checkout.BookResult) {
	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created.",
		"session": res.Session,
		"booking": res.Booking,
		"quote":   res.Quote,
	})
}

func failCheckout(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Item not found."))
	case errors.Is(err, checkout.ErrNotBookable):
		middleware.Fail(c, apperr.ConflictErr("This item is not open for booking."))
	case errors.Is(err, checkout.ErrUnknownAddOns):
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", map[string]string{"add_on_ids": "One or more add-ons do not belong to this adventure."}))
	case errors.Is(err, coupons.ErrNotUsable), errors.Is(err, coupons.ErrWrongScope), errors.Is(err, coupons.ErrWrongOwner):
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", map[string]string{"coupon_code": "This coupon cannot be used here."}))
	case errors.Is(err, payments.ErrProviderDown):
		middleware.Fail(c, apperr.UnavailableErr("Payments are temporarily unavailable. Please try again shortly."))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
