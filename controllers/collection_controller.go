package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// CollectionController exposes the generic list/create/delete routes
// over one named record collection.
type CollectionController struct {
	name string
	svc  *services.CollectionService
}

func NewCollectionController(name string, svc *services.CollectionService) *CollectionController {
	return &CollectionController{name: name, svc: svc}
}

// List returns the caller's records only.
// GET /api/{collection}
func (h *CollectionController) List(c *gin.Context) {
	items, err := h.svc.List(h.name, c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create stores the request body verbatim under an id/uid envelope.
// POST /api/{collection}
func (h *CollectionController) Create(c *gin.Context) {
	var body models.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body", "message": err.Error()})
		return
	}

	item, err := h.svc.Create(h.name, c.GetString("uid"), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Delete removes an owned record; non-existent or non-owned ids are a
// silent no-op.
// DELETE /api/{collection}/:id
func (h *CollectionController) Delete(c *gin.Context) {
	if err := h.svc.Delete(h.name, c.GetString("uid"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_error", "message": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
