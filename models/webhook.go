package models

import "encoding/json"

// WebhookDelivery is an append-only record of a verified GitHub
// delivery. Not scoped per user.
type WebhookDelivery struct {
	ID         string          `json:"id"`
	Event      string          `json:"event"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt string          `json:"receivedAt"`
}
