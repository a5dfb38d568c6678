// Package render centralizes the response shapes the dashboard consumes:
// { data } for reads, { message, data? } for writes, and the list envelope.
package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

func Data(c *gin.Context, v any) {
	c.JSON(http.StatusOK, gin.H{"data": v})
}

func List(c *gin.Context, env pagelist.Envelope) {
	c.JSON(http.StatusOK, env)
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func MessageData(c *gin.Context, msg string, v any) {
	c.JSON(http.StatusOK, gin.H{"message": msg, "data": v})
}

func Created(c *gin.Context, msg string, v any) {
	c.JSON(http.StatusCreated, gin.H{"message": msg, "data": v})
}

// Attachment streams bytes as a download with a fixed filename.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
