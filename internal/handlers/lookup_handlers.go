package handlers

import (
	"net/http"

	"carelink/internal/store"

	"github.com/gin-gonic/gin"
)

// GetLookups is the handler for GET /api/lookups: the form data every
// client needs (locations, urgency levels, active service types).
func (h *Handlers) GetLookups(c *gin.Context) {
	locations, err := store.ListLocations(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list locations"})
		return
	}

	urgencyLevels, err := store.ListUrgencyLevels(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list urgency levels"})
		return
	}

	serviceTypes, err := store.ListServiceTypes(h.DB, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list service types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locations":     locations,
		"urgencyLevels": urgencyLevels,
		"serviceTypes":  serviceTypes,
	})
}
