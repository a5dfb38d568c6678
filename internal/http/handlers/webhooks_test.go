package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func webhookRouter(h *WebhookHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhooks/payments", h.Handle)
	return r
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookHandler_RejectsBadSignature(t *testing.T) {
	h := &WebhookHandler{Logger: slog.Default(), ProviderName: "hosted-pay", Secret: "topsecret"}
	r := webhookRouter(h)

	body := []byte(`{"event_id":"evt_1","type":"session.paid","session_ref":"sess_1"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", "deadbeef")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid signature")
}

func TestWebhookHandler_RejectsMalformedPayload(t *testing.T) {
	h := &WebhookHandler{Logger: slog.Default(), ProviderName: "hosted-pay", Secret: "topsecret"}
	r := webhookRouter(h)

	body := []byte(`{"type":"session.paid"}`) // missing event_id
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", sign("topsecret", body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid payload")
}

func TestWebhookHandler_SignatureRoundTrip(t *testing.T) {
	h := &WebhookHandler{Secret: "topsecret"}
	body := []byte(`{"event_id":"evt_1"}`)

	assert.True(t, h.validSignature(sign("topsecret", body), body))
	assert.False(t, h.validSignature(sign("othersecret", body), body))
}
