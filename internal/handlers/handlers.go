package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"carelink/internal/auth"
	"carelink/internal/middleware"
	"carelink/internal/store"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Handlers holds the dependencies shared by every controller method.
type Handlers struct {
	DB     *sql.DB
	Tokens *auth.Tokens
}

// identity returns the verified caller set by the auth middleware.
func identity(c *gin.Context) *auth.Identity {
	return middleware.GetIdentity(c)
}

// paramID parses a numeric path parameter; on failure it writes the 400
// and reports false.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondStoreError maps store sentinel errors onto the coarse HTTP
// taxonomy: 404 for missing rows, 409 for conflicts, 500 otherwise.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case err == store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case err == store.ErrAlreadyAssigned:
		c.JSON(http.StatusConflict, gin.H{"error": "This request already has an assigned volunteer"})
	case err == store.ErrAlreadyProcessed:
		c.JSON(http.StatusConflict, gin.H{"error": "This request has already been processed"})
	case err == store.ErrNotAssigned:
		c.JSON(http.StatusConflict, gin.H{"error": "This request has no assigned volunteer"})
	case store.IsDuplicate(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate entry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// audit appends an audit entry for an admin-side mutation. The mutation
// has already happened, so a failed append is logged and dropped rather
// than failing the response.
func (h *Handlers) audit(c *gin.Context, actorID int64, action, target, details string) {
	actorName := ""
	if account, err := store.GetAccountByID(h.DB, actorID); err == nil {
		actorName = account.Username
	}
	if err := store.AddAuditEntry(h.DB, actorID, actorName, action, target, details); err != nil {
		log.WithError(err).WithField("action", action).Warn("audit entry dropped")
	}
}

// inTx runs fn inside a transaction and maps any failure onto the
// response. Rollback on the deferred path is a no-op after Commit.
func (h *Handlers) inTx(c *gin.Context, fn func(tx *sql.Tx) error) bool {
	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return false
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		respondStoreError(c, err)
		return false
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return false
	}
	return true
}
