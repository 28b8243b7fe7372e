package controllers

import (
	"net/http"
	"strconv"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	svc *services.AdminService
}

func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{svc: svc}
}

// GetStats aggregates the user table and login series.
// GET /api/admin/stats
func (h *AdminController) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetEntries lists raw entries of every collection for the admin
// console, trimmed to the limit query param (10-500, default 100).
// GET /api/admin/entries
func (h *AdminController) GetEntries(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 10 {
		limit = 10
	}
	if limit > 500 {
		limit = 500
	}

	entries, err := h.svc.Entries(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
