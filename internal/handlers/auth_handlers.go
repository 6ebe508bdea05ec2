package handlers

import (
	"net/http"

	"carelink/internal/models"
	"carelink/internal/store"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=pin csr"`
}

// Register is the handler for POST /api/register. Self-registration is
// limited to the pin and csr roles; admin-side roles are created by a
// user admin.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := store.GetRoleByLabel(h.DB, input.Role)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if role.Suspended {
		c.JSON(http.StatusForbidden, gin.H{"error": "Registration for this role is suspended"})
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

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"id":      id,
	})
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login authenticates a credential pair and issues a token. requireRole,
// when non-empty, restricts which role may use the endpoint.
func (h *Handlers) login(c *gin.Context, requireRole string) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := store.GetAccountByUsername(h.DB, input.Username)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	password := models.Password{Hash: account.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if account.Suspended {
		c.JSON(http.StatusForbidden, gin.H{"error": "This account is suspended"})
		return
	}
	if requireRole != "" && account.RoleLabel != requireRole {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied for this login"})
		return
	}

	token, err := h.Tokens.Generate(account.ID, account.RoleLabel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       account.ID,
			"username": account.Username,
			"role":     account.RoleLabel,
		},
	})
}

// Login is the handler for POST /api/login.
func (h *Handlers) Login(c *gin.Context) {
	h.login(c, "")
}

// UserAdminLogin is the handler for POST /api/userAdmin/login.
func (h *Handlers) UserAdminLogin(c *gin.Context) {
	h.login(c, models.RoleUserAdmin)
}

// UserAdminLogout is the handler for POST /api/userAdmin/logout. Tokens
// are stateless; the endpoint exists for frontend compatibility and lets
// the client drop its copy.
func (h *Handlers) UserAdminLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
