package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/levels"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type LevelsHandler struct {
	Repo *levels.Repo
}

// GET /api/levels?page=&search=
func (h *LevelsHandler) List(c *gin.Context) {
	p := pagelist.FromQuery(c.Request.URL.Query())

	rows, total, err := h.Repo.List(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}

// GET /api/levels/:id
func (h *LevelsHandler) Detail(c *gin.Context) {
	lv, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, orNotFound(err, "Level not found."))
		return
	}
	render.Data(c, lv)
}

type levelRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	MinPoints int    `json:"min_points" binding:"gte=0"`
	Perks     string `json:"perks" binding:"max=1000"`
}

// POST /api/levels
func (h *LevelsHandler) Create(c *gin.Context) {
	var req levelRequest
	if !bindJSON(c, &req) {
		return
	}

	lv, err := h.Repo.Create(c.Request.Context(), req.Name, req.MinPoints, req.Perks)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Created(c, "Level created.", lv)
}

// PUT /api/levels/:id
func (h *LevelsHandler) Update(c *gin.Context) {
	var req levelRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), req.Name, req.MinPoints, req.Perks); err != nil {
		middleware.Fail(c, orNotFound(err, "Level not found."))
		return
	}
	render.Message(c, "Level updated.")
}

// DELETE /api/levels/:id
func (h *LevelsHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, orNotFound(err, "Level not found."))
		return
	}
	render.Message(c, "Level deleted.")
}
