package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/auth"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/render"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/admins"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/customers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
)

type AuthHandler struct {
	Admins    *admins.Service
	Customers *customers.Repo
	Tokens    *auth.Tokens
	CookieTTL int // seconds
	Secure    bool
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.Admins.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, admins.ErrBadCredentials):
			middleware.Fail(c, apperr.UnauthorizedErr("Invalid email or password."))
		case errors.Is(err, admins.ErrAccountRevoked):
			middleware.Fail(c, apperr.ForbiddenErr("This account has been revoked."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	token, err := h.Tokens.Issue(a.ID, auth.RoleAdmin, a.Email)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.setAuthCookie(c, token)
	render.MessageData(c, "Signed in.", a)
}

// POST /api/auth/login
func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	cu, err := h.Customers.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.UnauthorizedErr("Invalid email or password."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(cu.PasswordHash), []byte(req.Password)) != nil {
		middleware.Fail(c, apperr.UnauthorizedErr("Invalid email or password."))
		return
	}
	if cu.Suspended {
		middleware.Fail(c, apperr.ForbiddenErr("This account is suspended."))
		return
	}

	token, err := h.Tokens.Issue(cu.ID, auth.RoleCustomer, cu.Email)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.setAuthCookie(c, token)
	render.MessageData(c, "Signed in.", cu)
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.Secure, true)
	render.Message(c, "Signed out.")
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Sign in required."))
		return
	}
	render.Data(c, gin.H{
		"id":    claims.Subject,
		"role":  claims.Role,
		"email": claims.Email,
	})
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, h.CookieTTL, "/", "", h.Secure, true)
}
