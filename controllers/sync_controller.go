package controllers

import (
	"errors"
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// SyncController exposes the one-way pull integrations and the
// connection status endpoint behind them.
type SyncController struct {
	identity  *services.IdentityService
	googleFit *services.GoogleFitService
	zepp      *services.ZeppService
	sync      *services.SyncService
}

func NewSyncController(identity *services.IdentityService, googleFit *services.GoogleFitService, zepp *services.ZeppService, sync *services.SyncService) *SyncController {
	return &SyncController{identity: identity, googleFit: googleFit, zepp: zepp, sync: sync}
}

// GetProviders reports per-source connection status for the caller.
// GET /api/health/providers
func (h *SyncController) GetProviders(c *gin.Context) {
	uid := c.GetString("uid")

	conn, err := h.identity.ConnectionFor(uid, "google_fit")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}

	googleFit := gin.H{"connected": false}
	if conn != nil {
		googleFit["connected"] = true
		googleFit["email"] = conn.Email
	}
	c.JSON(http.StatusOK, gin.H{
		"googleFit": googleFit,
		"zepp":      gin.H{"configured": h.zepp.Configured()},
	})
}

type googleFitSyncInput struct {
	Days int `json:"days"`
}

// clampSyncDays bounds the requested window to 1-90 days. Zero means
// the client sent no window and gets the 14-day default; explicit
// negatives clamp to 1.
func clampSyncDays(days int) int {
	switch {
	case days == 0:
		return 14
	case days < 1:
		return 1
	case days > 90:
		return 90
	}
	return days
}

// SyncGoogleFit pulls the trailing window and replaces the caller's
// google_fit-sourced steps and workouts.
// POST /api/sync/google-fit
func (h *SyncController) SyncGoogleFit(c *gin.Context) {
	uid := c.GetString("uid")

	var input googleFitSyncInput
	_ = c.ShouldBindJSON(&input) // body is optional
	days := clampSyncDays(input.Days)

	conn, err := h.identity.ConnectionFor(uid, "google_fit")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	if conn == nil || conn.AccessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "not_connected",
			"message": "Google Fit is not connected. Sign in with Google first.",
		})
		return
	}

	ctx := c.Request.Context()
	steps, err := h.googleFit.FetchSteps(ctx, conn.AccessToken, days)
	if err != nil {
		h.googleFitError(c, err)
		return
	}
	workouts, err := h.googleFit.FetchWorkouts(ctx, conn.AccessToken, days)
	if err != nil {
		h.googleFitError(c, err)
		return
	}

	stepsSynced, workoutsSynced, err := h.sync.ApplyGoogleFit(uid, steps, workouts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"provider":       "google_fit",
		"days":           days,
		"stepsSynced":    stepsSynced,
		"workoutsSynced": workoutsSynced,
	})
}

func (h *SyncController) googleFitError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrTokenInvalid) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "token_invalid",
			"message": "Google Fit rejected the stored token. Sign in with Google again.",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "sync_failed", "message": err.Error()})
}

// SyncZepp runs the Zepp handshake and applies today's data point. The
// optional body carries extra client-supplied health fields merged into
// the health-data record.
// POST /api/sync/zepp
func (h *SyncController) SyncZepp(c *gin.Context) {
	uid := c.GetString("uid")

	if !h.zepp.Configured() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "not_configured",
			"message": "Zepp sync is not configured on this server.",
		})
		return
	}

	var extra models.Record
	_ = c.ShouldBindJSON(&extra) // body is optional
	if extra == nil {
		extra = models.Record{}
	}

	data, err := h.zepp.Fetch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync_failed", "message": err.Error()})
		return
	}

	stepsSynced, healthSynced, err := h.sync.ApplyZepp(uid, data, extra)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":               true,
		"provider":         "zepp",
		"stepsSynced":      stepsSynced,
		"healthDataSynced": healthSynced,
		"data":             data,
	})
}
