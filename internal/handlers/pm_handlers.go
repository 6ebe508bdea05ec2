package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"carelink/internal/store"

	"github.com/gin-gonic/gin"
)

type ServiceTypeInput struct {
	Name string `json:"name" binding:"required"`
}

// GetServiceTypes is the handler for GET /api/pm/service-types. The
// platform-manager view includes soft-deleted rows so they can be
// restored.
func (h *Handlers) GetServiceTypes(c *gin.Context) {
	types, err := store.ListServiceTypes(h.DB, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list service types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceTypes": types})
}

// CreateServiceType is the handler for POST /api/pm/service-types.
func (h *Handlers) CreateServiceType(c *gin.Context) {
	ident := identity(c)

	var input ServiceTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := store.CreateServiceType(h.DB, input.Name)
	if err != nil {
		if store.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "A service type with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service type"})
		return
	}

	h.audit(c, ident.UserID, "service_type.create", input.Name, "")

	c.JSON(http.StatusCreated, gin.H{"message": "Service type created", "id": id})
}

// UpdateServiceType is the handler for PUT /api/pm/service-types/:id.
func (h *Handlers) UpdateServiceType(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input ServiceTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.UpdateServiceType(h.DB, id, input.Name); err != nil {
		respondStoreError(c, err)
		return
	}

	h.audit(c, ident.UserID, "service_type.update", input.Name, "")

	c.JSON(http.StatusOK, gin.H{"message": "Service type updated"})
}

// DeleteServiceType is the handler for DELETE /api/pm/service-types/:id.
// Soft delete only; requests keep their reference.
func (h *Handlers) DeleteServiceType(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := store.SetServiceTypeDeleted(h.DB, id, true); err != nil {
		respondStoreError(c, err)
		return
	}

	h.audit(c, ident.UserID, "service_type.delete", fmt.Sprintf("id=%d", id), "")

	c.JSON(http.StatusOK, gin.H{"message": "Service type removed"})
}

// RestoreServiceType is the handler for POST /api/pm/service-types/:id/restore.
func (h *Handlers) RestoreServiceType(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := store.SetServiceTypeDeleted(h.DB, id, false); err != nil {
		respondStoreError(c, err)
		return
	}

	h.audit(c, ident.UserID, "service_type.restore", fmt.Sprintf("id=%d", id), "")

	c.JSON(http.StatusOK, gin.H{"message": "Service type restored"})
}

type ReassignInput struct {
	ToID int64 `json:"toId" binding:"required"`
}

// ReassignServiceType is the handler for POST /api/pm/service-types/:fromId/reassign.
// Moves every request onto the target type and soft-deletes the source,
// atomically.
func (h *Handlers) ReassignServiceType(c *gin.Context) {
	ident := identity(c)
	fromID, ok := paramID(c, "fromId")
	if !ok {
		return
	}

	var input ReassignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ToID == fromID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot reassign a service type to itself"})
		return
	}

	var moved int64
	if !h.inTx(c, func(tx *sql.Tx) error {
		var err error
		moved, err = store.ReassignRequests(tx, fromID, input.ToID)
		if err != nil {
			return err
		}
		return store.SetServiceTypeDeleted(tx, fromID, true)
	}) {
		return
	}

	h.audit(c, ident.UserID, "service_type.reassign",
		fmt.Sprintf("from=%d to=%d", fromID, input.ToID), fmt.Sprintf("%d requests moved", moved))

	c.JSON(http.StatusOK, gin.H{"message": "Requests reassigned", "moved": moved})
}

type AnnouncementInput struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// SendAnnouncement is the handler for POST /api/pm/announcements/send.
func (h *Handlers) SendAnnouncement(c *gin.Context) {
	ident := identity(c)

	var input AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := store.CreateAnnouncement(h.DB, ident.UserID, input.Title, input.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send announcement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Announcement sent", "id": id})
}

// GetLatestAnnouncement is the handler for GET /api/pm/announcements/latest.
func (h *Handlers) GetLatestAnnouncement(c *gin.Context) {
	announcement, err := store.LatestAnnouncement(h.DB)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusOK, gin.H{"announcement": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": announcement})
}
