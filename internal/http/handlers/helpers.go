package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/auth"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/validation"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
)

// bindJSON binds and validates the body; on failure it queues the field-level
// error response and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed.", validation.FromBindError(err, dst)))
		return false
	}
	return true
}

// requireClaims pulls the authenticated claims; handlers behind RequireAuth
// always have them, but a missing set still fails closed.
func requireClaims(c *gin.Context) (*auth.Claims, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Sign in required."))
	}
	return claims, ok
}

// orNotFound maps a gorm missing-row error to a 404 with the given message.
func orNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundErr(msg)
	}
	return apperr.Wrap(err)
}
