package controllers

import (
	"io"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type WebhookController struct {
	secret string
	svc    *services.WebhookService
}

func NewWebhookController(secret string, svc *services.WebhookService) *WebhookController {
	return &WebhookController{secret: secret, svc: svc}
}

// Receive verifies the HMAC signature over the raw body and stores the
// delivery unconditionally on success.
// POST /webhook
func (h *WebhookController) Receive(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook_not_configured", "message": "WEBHOOK_SECRET is not set"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body", "message": "failed to read request body"})
		return
	}

	signature := c.GetHeader("X-Hub-Signature-256")
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_signature", "message": "X-Hub-Signature-256 header required"})
		return
	}
	if !services.VerifySignature(h.secret, body, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_signature", "message": "signature verification failed"})
		return
	}

	delivery, err := h.svc.Record(c.GetHeader("X-GitHub-Event"), c.GetHeader("X-GitHub-Delivery"), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": delivery.ID})
}
