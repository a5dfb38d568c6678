package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/auth"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
)

const CtxKeyClaims = "auth_claims"

// RequireAuth reads the JWT from the authToken cookie (falling back to a
// bearer header for API clients) and stores the claims on the context.
func RequireAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(auth.CookieName)
		if err != nil || raw == "" {
			if h := c.GetHeader("Authorization"); len(h) > 7 && h[:7] == "Bearer " {
				raw = h[7:]
			}
		}
		if raw == "" {
			Fail(c, apperr.UnauthorizedErr("Sign in required."))
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			Fail(c, apperr.UnauthorizedErr("Session expired. Please sign in again."))
			return
		}

		c.Set(CtxKeyClaims, claims)
		c.Next()
	}
}

func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(CtxKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
