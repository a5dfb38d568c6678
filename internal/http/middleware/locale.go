package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxKeyLocale  = "locale"
	DefaultLocale = "en"
)

var supportedLocales = map[string]bool{"en": true, "ar": true}

// Locale normalizes the Accept-Language header to a supported tag.
// "ar-BH,ar;q=0.9,en;q=0.8" -> "ar".
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxKeyLocale, localeFromHeader(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLocale(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyLocale); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return DefaultLocale
}

func localeFromHeader(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(part)
		if i := strings.Index(tag, ";"); i >= 0 {
			tag = tag[:i]
		}
		if i := strings.Index(tag, "-"); i >= 0 {
			tag = tag[:i]
		}
		tag = strings.ToLower(strings.TrimSpace(tag))
		if supportedLocales[tag] {
			return tag
		}
	}
	return DefaultLocale
}
