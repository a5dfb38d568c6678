package handlers

import (
	"bytes"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/export"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type CouponsHandler struct {
	Repo *coupons.Repo
	Svc  *coupons.Service
}

// GET /api/coupons?page=&search=&status=&scope=
func (h *CouponsHandler) List(c *gin.Context) {
	p := pagelist.FromQuery(c.Request.URL.Query(), "status", "scope")

	rows, total, err := h.Repo.List(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}

// GET /api/coupons/:id
func (h *CouponsHandler) Detail(c *gin.Context) {
	cpn, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, orNotFound(err, "Coupon not found."))
		return
	}
	render.Data(c, cpn)
}

type issueCouponRequest struct {
	Type        string     `json:"type" binding:"required,oneof=percentage fixed"`
	PercentOff  int        `json:"percent_off" binding:"gte=0,lte=100"`
	AmountCents int64      `json:"amount_cents" binding:"gte=0"`
	Scope       string     `json:"scope" binding:"required,oneof=adventure consultation"`
	CustomerID  string     `json:"customer_id"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// POST /api/coupons
func (h *CouponsHandler) Issue(c *gin.Context) {
	var req issueCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Type == coupons.TypePercentage && req.PercentOff == 0 {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", map[string]string{"percent_off": "Must be greater than 0."}))
		return
	}
	if req.Type == coupons.TypeFixed && req.AmountCents == 0 {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", map[string]string{"amount_cents": "Must be greater than 0."}))
		return
	}

	cpn, err := h.Svc.Issue(c.Request.Context(), coupons.IssueInput{
		Type:        req.Type,
		PercentOff:  req.PercentOff,
		AmountCents: req.AmountCents,
		Scope:       req.Scope,
		CustomerID:  req.CustomerID,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Created(c, "Coupon issued.", cpn)
}

// POST /api/coupons/:id/revoke
func (h *CouponsHandler) Revoke(c *gin.Context) {
	if err := h.Svc.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, coupons.ErrNotRevocable) {
			middleware.Fail(c, apperr.ConflictErr("Only active coupons can be revoked."))
			return
		}
		middleware.Fail(c, orNotFound(err, "Coupon not found."))
		return
	}
	render.Message(c, "Coupon revoked.")
}

// GET /api/coupons/export
func (h *CouponsHandler) Export(c *gin.Context) {
	rows, err := h.Repo.All(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var buf bytes.Buffer
	if err := export.Coupons(&buf, rows); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Attachment(c, "coupons.csv", "text/csv", buf.Bytes())
}
