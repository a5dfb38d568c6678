package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/consultations"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type ConsultationsHandler struct {
	Repo *consultations.Repo
}

// GET /api/consultations?page=&search=&status=
func (h *ConsultationsHandler) List(c *gin.Context) {
	p := pagelist.FromQuery(c.Request.URL.Query(), "status")

	rows, total, err := h.Repo.List(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}

// GET /api/consultations/:id
func (h *ConsultationsHandler) Detail(c *gin.Context) {
	pkg, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, orNotFound(err, "Consultation package not found."))
		return
	}
	render.Data(c, pkg)
}

type consultationRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"max=10000"`
	Sessions    int    `json:"sessions" binding:"required,gt=0"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Status      string `json:"status" binding:"required,oneof=draft active archived"`
}

func (r consultationRequest) toInput() consultations.CreateInput {
	return consultations.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Sessions:    r.Sessions,
		PriceCents:  r.PriceCents,
		Currency:    r.Currency,
		Status:      r.Status,
	}
}

// POST /api/consultations
func (h *ConsultationsHandler) Create(c *gin.Context) {
	var req consultationRequest
	if !bindJSON(c, &req) {
		return
	}

	pkg, err := h.Repo.Create(c.Request.Context(), req.toInput())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Created(c, "Consultation package created.", pkg)
}

// PUT /api/consultations/:id
func (h *ConsultationsHandler) Update(c *gin.Context) {
	var req consultationRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), req.toInput()); err != nil {
		middleware.Fail(c, orNotFound(err, "Consultation package not found."))
		return
	}
	render.Message(c, "Consultation package updated.")
}

// DELETE /api/consultations/:id
func (h *ConsultationsHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, orNotFound(err, "Consultation package not found."))
		return
	}
	render.Message(c, "Consultation package deleted.")
}
