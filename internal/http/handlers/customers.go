package handlers

import (
	"bytes"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/export"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/customers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type CustomersHandler struct {
	Repo    *customers.Repo
	Svc     *customers.Service
	Coupons *coupons.Repo
}

// GET /api/customers?page=&search=&gender=&suspended=
func (h *CustomersHandler) List(c *gin.Context) {
	p := pagelist.FromQuery(c.Request.URL.Query(), "gender", "suspended")

	rows, total, err := h.Repo.List(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}

// GET /api/customers/:id
func (h *CustomersHandler) Detail(c *gin.Context) {
	cu, err := h.Svc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, orNotFound(err, "Customer not found."))
		return
	}
	render.Data(c, cu)
}

// POST /api/customers/:id/suspend
func (h *CustomersHandler) Suspend(c *gin.Context) {
	if err := h.Svc.Suspend(c.Request.Context(), c.Param("id")); err != nil {
		h.failSuspend(c, err)
		return
	}
	render.Message(c, "Customer suspended.")
}

// POST /api/customers/:id/unsuspend
func (h *CustomersHandler) Unsuspend(c *gin.Context) {
	if err := h.Svc.Unsuspend(c.Request.Context(), c.Param("id")); err != nil {
		h.failSuspend(c, err)
		return
	}
	render.Message(c, "Customer unsuspended.")
}

func (h *CustomersHandler) failSuspend(c *gin.Context, err error) {
	if errors.Is(err, customers.ErrSuspendNoop) {
		middleware.Fail(c, apperr.ConflictErr("Customer is already in that state."))
		return
	}
	middleware.Fail(c, orNotFound(err, "Customer not found."))
}

type adjustPointsRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,min=3,max=255"`
}

// POST /api/customers/:id/points
func (h *CustomersHandler) AdjustPoints(c *gin.Context) {
	var req adjustPointsRequest
	if !bindJSON(c, &req) {
		return
	}

	claims, _ := middleware.CurrentClaims(c)
	actorID := ""
	if claims != nil {
		actorID = claims.Subject
	}

	cu, err := h.Svc.AdjustPoints(c.Request.Context(), customers.AdjustPointsInput{
		CustomerID: c.Param("id"),
		Delta:      req.Delta,
		ActorID:    actorID,
		Reason:     req.Reason,
	})
	if err != nil {
		if errors.Is(err, customers.ErrPointsBelowZero) {
			middleware.Fail(c, apperr.InvalidErr("Points cannot go below zero.", nil))
			return
		}
		middleware.Fail(c, orNotFound(err, "Customer not found."))
		return
	}
	render.MessageData(c, "Points updated.", cu)
}

// GET /api/customers/:id/coupons
func (h *CustomersHandler) CustomerCoupons(c *gin.Context) {
	id := c.Param("id")

	// confirm the customer exists so a bad id is a 404, not an empty list
	if _, err := h.Repo.Get(c.Request.Context(), id); err != nil {
		middleware.Fail(c, orNotFound(err, "Customer not found."))
		return
	}

	rows, err := h.Coupons.ListForCustomer(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Data(c, rows)
}

// GET /api/customers/export
func (h *CustomersHandler) Export(c *gin.Context) {
	rows, err := h.Repo.All(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var buf bytes.Buffer
	if err := export.Customers(&buf, rows); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Attachment(c, "customers.csv", "text/csv", buf.Bytes())
}
