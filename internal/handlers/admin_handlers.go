package handlers

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"carelink/internal/models"
	"carelink/internal/store"

	"github.com/gin-gonic/gin"
)

//
// --- Account Administration ---
//

type CreateAccountInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// CreateAccount is the handler for POST /api/userAdmin/accounts.
func (h *Handlers) CreateAccount(c *gin.Context) {
	ident := identity(c)

	var input CreateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := store.GetRoleByLabel(h.DB, input.Role)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	id, err := store.CreateAccount(h.DB, input.Username, password.Hash, role.ID)
	if err != nil {
		if store.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	h.audit(c, ident.UserID, "account.create", input.Username, "role="+input.Role)

	c.JSON(http.StatusCreated, gin.H{"message": "Account created", "id": id})
}

// SearchAccounts is the handler for GET /api/userAdmin/accounts. Supports
// ?q= keyword over username/role and ?status=active|suspended.
func (h *Handlers) SearchAccounts(c *gin.Context) {
	accounts, err := store.SearchAccounts(h.DB, c.Query("q"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

type UpdateAccountInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Role     string `json:"role" binding:"required"`
}

// UpdateAccount is the handler for PUT /api/userAdmin/accounts/:id.
func (h *Handlers) UpdateAccount(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := store.GetRoleByLabel(h.DB, input.Role)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := store.UpdateAccount(h.DB, id, input.Username, role.ID); err != nil {
		if store.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
			return
		}
		respondStoreError(c, err)
		return
	}

	h.audit(c, ident.UserID, "account.update", input.Username, "role="+input.Role)

	c.JSON(http.StatusOK, gin.H{"message": "Account updated"})
}

type SuspendInput struct {
	Suspended *bool `json:"suspended" binding:"required"`
}

// SuspendAccount is the handler for PATCH /api/userAdmin/accounts/:id/suspend.
func (h *Handlers) SuspendAccount(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input SuspendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.SetAccountSuspended(h.DB, id, *input.Suspended); err != nil {
		respondStoreError(c, err)
		return
	}

	h.audit(c, ident.UserID, "account.suspend", fmt.Sprintf("id=%d", id),
		fmt.Sprintf("suspended=%t", *input.Suspended))

	c.JSON(http.StatusOK, gin.H{"message": "Account suspension updated"})
}

// DeleteAccount is the handler for DELETE /api/userAdmin/accounts/:id.
func (h *Handlers) DeleteAccount(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteAccount(h.DB, id); err != nil {
		respondStoreError(c, err)
		return
	}

	h.audit(c, ident.UserID, "account.delete", fmt.Sprintf("id=%d", id), "")

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

//
// --- Role Administration ---
//

type RoleInput struct {
	Label string `json:"label" binding:"required"`
}

// GetRoles is the handler for GET /api/userAdmin/roles.
func (h *Handlers) GetRoles(c *gin.Context) {
	roles, err := store.ListRoles(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list roles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// CreateRole is the handler for POST /api/userAdmin/roles.
func (h *Handlers) CreateRole(c *gin.Context) {
	ident := identity(c)

	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := store.CreateRole(h.DB, input.Label)
	if err != nil {
		if store.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "A role with this label already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create role"})
		return
	}

	h.audit(c, ident.UserID, "role.create", input.Label, "")

	c.JSON(http.StatusCreated, gin.H{"message": "Role created", "id": id})
}

// SuspendRole is the handler for PATCH /api/userAdmin/roles/:id/suspend.
func (h *Handlers) SuspendRole(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input SuspendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.SetRoleSuspended(h.DB, id, *input.Suspended); err != nil {
		respondStoreError(c, err)
		return
	}

	h.audit(c, ident.UserID, "role.suspend", fmt.Sprintf("id=%d", id),
		fmt.Sprintf("suspended=%t", *input.Suspended))

	c.JSON(http.StatusOK, gin.H{"message": "Role suspension updated"})
}

// DeleteRole is the handler for DELETE /api/userAdmin/roles/:id.
func (h *Handlers) DeleteRole(c *gin.Context) {
	ident := identity(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := store.DeleteRole(h.DB, id); err != nil {
		respondStoreError(c, err)
		return
	}

	h.audit(c, ident.UserID, "role.delete", fmt.Sprintf("id=%d", id), "")

	c.JSON(http.StatusOK, gin.H{"message": "Role deleted"})
}

//
// --- Password-Reset Approval ---
//

type ResetRequestInput struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// CreateResetRequest is the handler for POST /api/password-reset. The
// candidate password is hashed before it is stored.
func (h *Handlers) CreateResetRequest(c *gin.Context) {
	var input ResetRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var password models.Password
	if err := password.Set(input.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	id, err := store.CreateResetRequest(h.DB, input.Username, password.Hash)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Password reset requested", "id": id})
}

// GetResetRequests is the handler for GET /api/userAdmin/password-reset-requests.
func (h *Handlers) GetResetRequests(c *gin.Context) {
	requests, err := store.ListResetRequests(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reset requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

type ReviewResetInput struct {
	RequestID int64  `json:"requestId" binding:"required"`
	Note      string `json:"note"`
}

// reviewReset handles both approve and reject; the two transitions differ
// only in whether the account password is updated.
func (h *Handlers) reviewReset(c *gin.Context, approve bool) {
	ident := identity(c)

	var input ReviewResetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminName := ""
	if account, err := store.GetAccountByID(h.DB, ident.UserID); err == nil {
		adminName = account.Username
	}

	action := "password_reset.reject"
	if approve {
		action = "password_reset.approve"
	}

	if !h.inTx(c, func(tx *sql.Tx) error {
		if approve {
			return store.ApproveReset(tx, input.RequestID, ident.UserID, adminName, input.Note)
		}
		return store.RejectReset(tx, input.RequestID, ident.UserID, adminName, input.Note)
	}) {
		return
	}

	h.audit(c, ident.UserID, action, fmt.Sprintf("request=%d", input.RequestID), input.Note)

	c.JSON(http.StatusOK, gin.H{"message": "Reset request processed"})
}

// ApproveResetRequest is the handler for POST /api/userAdmin/password-reset-approve.
func (h *Handlers) ApproveResetRequest(c *gin.Context) {
	h.reviewReset(c, true)
}

// RejectResetRequest is the handler for POST /api/userAdmin/password-reset-reject.
func (h *Handlers) RejectResetRequest(c *gin.Context) {
	h.reviewReset(c, false)
}

// ClearResetRequests is the handler for POST /api/userAdmin/password-reset-clear.
func (h *Handlers) ClearResetRequests(c *gin.Context) {
	ident := identity(c)

	cleared, err := store.ClearResetRequests(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear reset requests"})
		return
	}

	h.audit(c, ident.UserID, "password_reset.clear", "all", fmt.Sprintf("%d rows", cleared))

	c.JSON(http.StatusOK, gin.H{"message": "Reset requests cleared", "cleared": cleared})
}

//
// --- Audit Log ---
//

// GetAuditLog is the handler for GET /api/userAdmin/audit-log.
func (h *Handlers) GetAuditLog(c *gin.Context) {
	entries, err := store.ListAuditEntries(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// ClearAuditLog is the handler for DELETE /api/userAdmin/audit-log.
func (h *Handlers) ClearAuditLog(c *gin.Context) {
	cleared, err := store.ClearAuditLog(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audit log cleared", "cleared": cleared})
}

// ExportAuditLog is the handler for GET /api/userAdmin/audit-log/export.
func (h *Handlers) ExportAuditLog(c *gin.Context) {
	entries, err := store.ListAuditEntries(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit log"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="audit-log.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"id", "actor", "action", "target", "details", "createdAt"})
	for _, e := range entries {
		details := ""
		if e.Details.Valid {
			details = e.Details.String
		}
		w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			e.ActorName,
			e.Action,
			e.Target,
			details,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
}
