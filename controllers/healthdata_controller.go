package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type HealthDataController struct {
	svc *services.HealthDataService
}

func NewHealthDataController(svc *services.HealthDataService) *HealthDataController {
	return &HealthDataController{svc: svc}
}

// List returns the caller's health records with legacy snake_case
// aliases included.
// GET /api/health-data
func (h *HealthDataController) List(c *gin.Context) {
	items, err := h.svc.List(c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create accepts camelCase or snake_case metric fields.
// POST /api/health-data
func (h *HealthDataController) Create(c *gin.Context) {
	var body models.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body", "message": err.Error()})
		return
	}

	item, err := h.svc.Create(c.GetString("uid"), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Summary rolls the caller's records up per day.
// GET /api/health-data/summary
func (h *HealthDataController) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
