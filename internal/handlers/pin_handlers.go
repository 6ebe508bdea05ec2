package handlers

import (
	"database/sql"
	"encoding/csv"
	"net/http"
	"strconv"

	"carelink/internal/models"
	"carelink/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestInput struct {
	Title         string `json:"title" binding:"required"`
	ServiceTypeID int64  `json:"serviceTypeId" binding:"required"`
	Message       string `json:"message" binding:"required"`
	LocationID    int64  `json:"locationId" binding:"required"`
	UrgencyID     int64  `json:"urgencyId" binding:"required"`
}

// CreatePinRequest is the handler for POST /api/pin/requests.
func (h *Handlers) CreatePinRequest(c *gin.Context) {
	ident := identity(c)

	var input RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := &models.PinRequest{
		Reference:     uuid.NewString(),
		PinID:         ident.UserID,
		Title:         input.Title,
		ServiceTypeID: input.ServiceTypeID,
		Message:       input.Message,
		LocationID:    input.LocationID,
		UrgencyID:     input.UrgencyID,
	}

	id, err := store.CreateRequest(h.DB, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Request created",
		"id":        id,
		"reference": req.Reference,
	})
}

// GetMyRequests is the handler for GET /api/pin/requests.
func (h *Handlers) GetMyRequests(c *gin.Context) {
	ident := identity(c)

	requests, err := store.ListRequestsByPin(h.DB, ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// GetPinRequest is the handler for GET /api/pin/requests/:id.
func (h *Handlers) GetPinRequest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	req, err := store.GetRequestByID(h.DB, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

// UpdatePinRequest is the handler for PUT /api/pin/requests/:id. Edits are
// only possible before a CSR is assigned.
func (h *Handlers) UpdatePinRequest(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := store.UpdateRequest(h.DB, id, ident.UserID, input.Title, input.ServiceTypeID,
		input.Message, input.LocationID, input.UrgencyID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request updated"})
}

// DeletePinRequest is the handler for DELETE /api/pin/requests/:id.
func (h *Handlers) DeletePinRequest(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteRequest(h.DB, id, ident.UserID); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted"})
}

// IncrementView is the handler for POST /api/pin/requests/:id/increment-view.
func (h *Handlers) IncrementView(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := store.IncrementViewCount(h.DB, id); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "View counted"})
}

// IncrementShortlist is the handler for POST /api/pin/requests/:id/increment-shortlist.
func (h *Handlers) IncrementShortlist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := store.IncrementShortlistCount(h.DB, id); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shortlist counted"})
}

type AcceptInput struct {
	CsrID int64 `json:"csrId" binding:"required"`
}

// AcceptCsr is the handler for POST /api/pin/requests/:id/accept. The whole
// accept sequence runs in one transaction.
func (h *Handlers) AcceptCsr(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input AcceptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := store.GetRequestByID(h.DB, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if req.PinID != ident.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if !h.inTx(c, func(tx *sql.Tx) error {
		return store.AcceptOffer(tx, id, input.CsrID)
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Volunteer accepted"})
}

// CompletePinRequest is the handler for POST /api/pin/requests/:id/complete.
func (h *Handlers) CompletePinRequest(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if !h.inTx(c, func(tx *sql.Tx) error {
		return store.MarkCompleted(tx, id, ident.UserID)
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request completed"})
}

// ExportMyRequests is the handler for GET /api/pin/requests/export. The CSV
// carries a synthetic sequential id column and the literal NULL for an
// absent assigned CSR.
func (h *Handlers) ExportMyRequests(c *gin.Context) {
	ident := identity(c)

	requests, err := store.ListRequestsByPin(h.DB, ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="request-history.csv"`)

	w := csv.NewWriter(c.Writer)
	WriteRequestHistoryCSV(w, requests)
	w.Flush()
}

// WriteRequestHistoryCSV renders the PIN history export rows.
func WriteRequestHistoryCSV(w *csv.Writer, requests []*models.PinRequest) {
	w.Write([]string{"id", "title", "serviceType", "location", "urgency", "status", "csr", "createdAt"})
	for i, req := range requests {
		csr := "NULL"
		if req.CsrUsername.Valid {
			csr = req.CsrUsername.String
		}
		w.Write([]string{
			strconv.Itoa(i + 1),
			req.Title,
			req.ServiceType,
			req.LocationName,
			req.UrgencyLabel,
			req.Status,
			csr,
			req.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

type FeedbackInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// CreatePinFeedback is the handler for POST /api/pin/requests/:id/feedback.
// One rating per (request, csr, pin) triple, after completion.
func (h *Handlers) CreatePinFeedback(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := store.GetRequestByID(h.DB, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !req.CsrID.Valid {
		c.JSON(http.StatusConflict, gin.H{"error": "This request has no assigned volunteer"})
		return
	}

	fb := &models.Feedback{
		RequestID: id,
		CsrID:     req.CsrID.Int64,
		PinID:     ident.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	var fbID int64
	if !h.inTx(c, func(tx *sql.Tx) error {
		var err error
		fbID, err = store.CreateFeedback(tx, fb)
		return err
	}) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Feedback recorded", "id": fbID})
}
