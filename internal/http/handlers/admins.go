package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/admins"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type AdminsHandler struct {
	Repo *admins.Repo
	Svc  *admins.Service
}

// GET /api/admins?page=&search=&status=
func (h *AdminsHandler) List(c *gin.Context) {
	p := pagelist.FromQuery(c.Request.URL.Query(), "status")

	rows, total, err := h.Repo.List(c.Request.Context(), p)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.List(c, pagelist.NewEnvelope(rows, p, total))
}

type inviteAdminRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// POST /api/admins/invite
func (h *AdminsHandler) Invite(c *gin.Context) {
	var req inviteAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	claims, _ := middleware.CurrentClaims(c)
	invitedBy := ""
	if claims != nil {
		invitedBy = claims.Subject
	}

	a, _, err := h.Svc.Invite(c.Request.Context(), admins.InviteInput{
		Name:      req.Name,
		Email:     req.Email,
		InvitedBy: invitedBy,
	})
	if err != nil {
		if errors.Is(err, admins.ErrEmailTaken) {
			middleware.Fail(c, apperr.ConflictErr("An admin with this email already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.Created(c, "Invitation sent.", a)
}

// POST /api/admins/:id/revoke
func (h *AdminsHandler) Revoke(c *gin.Context) {
	if err := h.Svc.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, admins.ErrAlreadyRevoked) {
			middleware.Fail(c, apperr.ConflictErr("Admin is already revoked."))
			return
		}
		middleware.Fail(c, orNotFound(err, "Admin not found."))
		return
	}
	render.Message(c, "Admin access revoked.")
}
