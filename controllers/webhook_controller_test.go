package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"backend/services"
	"backend/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWebhookRouter(t *testing.T, secret string) (*gin.Engine, store.Store) {
	gin.SetMode(gin.TestMode)
	st := store.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	ctl := NewWebhookController(secret, services.NewWebhookService(st))

	r := gin.New()
	r.POST("/webhook", ctl.Receive)
	return r, st
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookValidSignatureStoresDelivery(t *testing.T) {
	r, st := newWebhookRouter(t, "abc")

	body := "{}"
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign("abc", body))
	req.Header.Set("X-GitHub-Event", "push")
	req.Header.Set("X-GitHub-Delivery", "delivery-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Load()
	require.NoError(t, err)
	require.Len(t, doc.Webhooks, 1)
	assert.Equal(t, "delivery-1", doc.Webhooks[0].ID)
	assert.Equal(t, "push", doc.Webhooks[0].Event)
	assert.NotEmpty(t, doc.Webhooks[0].ReceivedAt)
}

func TestWebhookInvalidSignatureRejected(t *testing.T) {
	r, st := newWebhookRouter(t, "abc")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
	req.Header.Set("X-Hub-Signature-256", sign("wrong-secret", "{}"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	doc, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Webhooks)
}

func TestWebhookMissingSignatureIsBadRequest(t *testing.T) {
	r, _ := newWebhookRouter(t, "abc")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookWithoutSecretIsServerError(t *testing.T) {
	r, _ := newWebhookRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
	req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhookMissingDeliveryIDGetsGenerated(t *testing.T) {
	r, st := newWebhookRouter(t, "abc")

	body := `{"action":"opened"}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign("abc", body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Load()
	require.NoError(t, err)
	require.Len(t, doc.Webhooks, 1)
	assert.NotEmpty(t, doc.Webhooks[0].ID)
	assert.Equal(t, "unknown", doc.Webhooks[0].Event)
}
