package handlers

import (
	"database/sql"
	"net/http"

	"carelink/internal/store"

	"github.com/gin-gonic/gin"
)

// csrSelf parses :csrId and checks it is the caller; CSR endpoints only
// operate on the caller's own rows.
func csrSelf(c *gin.Context) (int64, bool) {
	csrID, ok := paramID(c, "csrId")
	if !ok {
		return 0, false
	}
	if ident := identity(c); ident == nil || ident.UserID != csrID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return 0, false
	}
	return csrID, true
}

// csrName resolves the caller's username for notification messages.
func (h *Handlers) csrName(c *gin.Context, csrID int64) (string, bool) {
	account, err := store.GetAccountByID(h.DB, csrID)
	if err != nil {
		respondStoreError(c, err)
		return "", false
	}
	return account.Username, true
}

// GetOpenRequests is the handler for GET /api/csr/requests/open.
func (h *Handlers) GetOpenRequests(c *gin.Context) {
	requests, err := store.ListOpenRequests(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list open requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// GetShortlist is the handler for GET /api/csr/:csrId/shortlist.
func (h *Handlers) GetShortlist(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}

	requests, err := store.ListShortlisted(h.DB, csrID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shortlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// AddToShortlist is the handler for POST /api/csr/:csrId/shortlist/:requestId.
func (h *Handlers) AddToShortlist(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}
	requestID, ok := paramID(c, "requestId")
	if !ok {
		return
	}
	name, ok := h.csrName(c, csrID)
	if !ok {
		return
	}

	if !h.inTx(c, func(tx *sql.Tx) error {
		return store.AddShortlist(tx, csrID, requestID, name)
	}) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Request shortlisted"})
}

// RemoveFromShortlist is the handler for DELETE /api/csr/:csrId/shortlist/:requestId.
func (h *Handlers) RemoveFromShortlist(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}
	requestID, ok := paramID(c, "requestId")
	if !ok {
		return
	}

	if err := store.RemoveShortlist(h.DB, csrID, requestID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shortlist entry removed"})
}

// GetInterested is the handler for GET /api/csr/:csrId/interested.
func (h *Handlers) GetInterested(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}

	requests, err := store.ListInterested(h.DB, csrID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list interested requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// DeclareInterest is the handler for POST /api/csr/:csrId/interested/:requestId.
// Idempotent: repeating the call reports already-interested rather than
// erroring or duplicating.
func (h *Handlers) DeclareInterest(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}
	requestID, ok := paramID(c, "requestId")
	if !ok {
		return
	}
	name, ok := h.csrName(c, csrID)
	if !ok {
		return
	}

	var already bool
	if !h.inTx(c, func(tx *sql.Tx) error {
		var err error
		already, err = store.DeclareInterest(tx, csrID, requestID, name)
		return err
	}) {
		return
	}

	if already {
		c.JSON(http.StatusOK, gin.H{"message": "Already interested"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Interest recorded"})
}

// WithdrawInterest is the handler for DELETE /api/csr/:csrId/interested/:requestId.
func (h *Handlers) WithdrawInterest(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}
	requestID, ok := paramID(c, "requestId")
	if !ok {
		return
	}
	name, ok := h.csrName(c, csrID)
	if !ok {
		return
	}

	if !h.inTx(c, func(tx *sql.Tx) error {
		return store.WithdrawInterest(tx, csrID, requestID, name)
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interest withdrawn"})
}

// GetOffers is the handler for GET /api/csr/:csrId/offers.
func (h *Handlers) GetOffers(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}

	offers, err := store.ListOffers(h.DB, csrID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list offers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// CancelEngagement is the handler for POST /api/csr/:csrId/offers/:requestId/cancel.
// If the caller was the assigned CSR the request reverts to Available.
func (h *Handlers) CancelEngagement(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}
	requestID, ok := paramID(c, "requestId")
	if !ok {
		return
	}
	name, ok := h.csrName(c, csrID)
	if !ok {
		return
	}

	if !h.inTx(c, func(tx *sql.Tx) error {
		return store.CancelEngagement(tx, csrID, requestID, name)
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Engagement cancelled"})
}

// GetMyFeedback is the handler for GET /api/csr/:csrId/feedback.
func (h *Handlers) GetMyFeedback(c *gin.Context) {
	csrID, ok := csrSelf(c)
	if !ok {
		return
	}

	feedback, err := store.ListFeedbackForCsr(h.DB, csrID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}
