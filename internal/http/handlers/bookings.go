package handlers

import (
	"bytes"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/export"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/bookings"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type BookingsHandler struct {
	Repo *bookings.Repo
	Svc  *bookings.AdminService
}

// GET /api/bookings?page=&search=&status=&kind=
func (h *BookingsHandler) List(c *gin.Context) {
	p := pagelist.FromQuery(c.Request.URL.Query(), "status", "kind")

	rows, total, err := h.Repo.List(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}

// GET /api/bookings/:id
func (h *BookingsHandler) Detail(c *gin.Context) {
	b, events, err := h.Repo.GetWithEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, orNotFound(err, "Booking not found."))
		return
	}
	render.Data(c, gin.H{"booking": b, "events": events})
}

type bookingActionRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject cancel mark-paid"`
	Note   string `json:"note" binding:"max=255"`
}

// POST /api/bookings/:id/action
func (h *BookingsHandler) Action(c *gin.Context) {
	var req bookingActionRequest
	if !bindJSON(c, &req) {
		return
	}

	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	err := h.Svc.Transition(c.Request.Context(), bookings.TransitionInput{
		BookingID: c.Param("id"),
		ActorID:   claims.Subject,
		Action:    req.Action,
		Note:      req.Note,
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidTransition) || errors.Is(err, bookings.ErrNotActionable) {
			middleware.Fail(c, apperr.ConflictErr("This action is not allowed for the booking's current status."))
			return
		}
		middleware.Fail(c, orNotFound(err, "Booking not found."))
		return
	}
	render.Message(c, "Booking updated.")
}

// GET /api/bookings/export
func (h *BookingsHandler) Export(c *gin.Context) {
	rows, err := h.Repo.All(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var buf bytes.Buffer
	if err := export.Bookings(&buf, rows); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Attachment(c, "bookings.csv", "text/csv", buf.Bytes())
}

// GET /api/invoices?page=&search=
func (h *BookingsHandler) ListInvoices(c *gin.Context) {
	p := pagelist.FromQuery(c.Request.URL.Query())

	rows, total, err := h.Repo.ListInvoices(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}

// GET /api/invoices/export
func (h *BookingsHandler) ExportInvoices(c *gin.Context) {
	rows, err := h.Repo.AllInvoices(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var buf bytes.Buffer
	if err := export.Invoices(&buf, rows); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Attachment(c, "invoices.csv", "text/csv", buf.Bytes())
}

// GET /api/my/bookings (the signed-in customer's own bookings)
func (h *BookingsHandler) MyBookings(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	p := pagelist.FromQuery(c.Request.URL.Query(), "status", "kind")
	rows, total, err := h.Repo.ListForCustomer(c.Request.Context(), claims.Subject, p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}
