package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"backend/models"
	"backend/store"

	"github.com/google/uuid"
)

// WebhookService verifies and stores signed GitHub delivery events.
type WebhookService struct {
	store store.Store
}

func NewWebhookService(st store.Store) *WebhookService {
	return &WebhookService{store: st}
}

// VerifySignature checks the sha256= HMAC of the raw body against the
// caller-supplied signature header, in constant time.
func VerifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// Record stores a verified delivery unconditionally, prepended. A
// missing delivery id gets a generated one.
func (s *WebhookService) Record(event, deliveryID string, payload []byte) (*models.WebhookDelivery, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	if event == "" {
		event = "unknown"
	}
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	if !json.Valid(payload) {
		payload, _ = json.Marshal(string(payload))
	}

	delivery := models.WebhookDelivery{
		ID:         deliveryID,
		Event:      event,
		Payload:    json.RawMessage(payload),
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
	doc.Webhooks = append([]models.WebhookDelivery{delivery}, doc.Webhooks...)

	if err := s.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return &delivery, nil
}
