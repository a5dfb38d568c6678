package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/payments"
)

type WebhookHandler struct {
	Logger       *slog.Logger
	ProviderName string
	Secret       string
	WebhookSvc   *payments.WebhookService
}

// POST /webhooks/payments
// Raw JSON body; X-Webhook-Signature carries hex HMAC-SHA256 of the body.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if !h.validSignature(c.GetHeader("X-Webhook-Signature"), body) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid signature"})
		return
	}

	var ev payments.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil || ev.EventID == "" || ev.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
		return
	}

	if err := h.WebhookSvc.Handle(c.Request.Context(), h.ProviderName, ev, body); err != nil {
		// 500 so the gateway retries
		h.Logger.Error("webhook apply failed", "event_id", ev.EventID, "type", ev.Type, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WebhookHandler) validSignature(got string, body []byte) bool {
	if h.Secret == "" {
		// dev mode with the mock provider
		return true
	}
	mac := hmac.New(sha256.New, []byte(h.Secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(got), []byte(want))
}
