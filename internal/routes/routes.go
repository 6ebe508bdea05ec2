package routes

import (
	"net/http"

	"carelink/internal/auth"
	"carelink/internal/handlers"
	"carelink/internal/middleware"
	"carelink/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the full API surface. Role enforcement happens here,
// per group, against the verified token identity.
func SetupRouter(h *handlers.Handlers, tokens *auth.Tokens, corsOrigin string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		// --- Public ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/password-reset", h.CreateResetRequest)
		api.POST("/userAdmin/login", h.UserAdminLogin)
		api.POST("/userAdmin/logout", h.UserAdminLogout)

		// --- Any authenticated user ---
		authed := api.Group("/")
		authed.Use(middleware.AuthMiddleware(tokens))
		{
			authed.GET("/lookups", h.GetLookups)
			authed.GET("/notifications", h.GetMyNotifications)
			authed.PATCH("/notifications/:id/read", h.MarkNotificationRead)
		}

		// --- PIN Routes ---
		pin := api.Group("/pin")
		pin.Use(middleware.AuthMiddleware(tokens))
		pin.Use(middleware.RequireRole(models.RolePIN))
		{
			pin.POST("/requests", h.CreatePinRequest)
			pin.GET("/requests", h.GetMyRequests)
			pin.GET("/requests/export", h.ExportMyRequests)
			pin.GET("/requests/:id", h.GetPinRequest)
			pin.PUT("/requests/:id", h.UpdatePinRequest)
			pin.DELETE("/requests/:id", h.DeletePinRequest)
			pin.POST("/requests/:id/accept", h.AcceptCsr)
			pin.POST("/requests/:id/complete", h.CompletePinRequest)
			pin.POST("/requests/:id/feedback", h.CreatePinFeedback)
		}

		// --- CSR Routes ---
		csr := api.Group("/csr")
		csr.Use(middleware.AuthMiddleware(tokens))
		csr.Use(middleware.RequireRole(models.RoleCSR))
		{
			csr.GET("/requests/open", h.GetOpenRequests)
			csr.GET("/:csrId/shortlist", h.GetShortlist)
			csr.POST("/:csrId/shortlist/:requestId", h.AddToShortlist)
			csr.DELETE("/:csrId/shortlist/:requestId", h.RemoveFromShortlist)
			csr.GET("/:csrId/interested", h.GetInterested)
			csr.POST("/:csrId/interested/:requestId", h.DeclareInterest)
			csr.DELETE("/:csrId/interested/:requestId", h.WithdrawInterest)
			csr.GET("/:csrId/offers", h.GetOffers)
			csr.POST("/:csrId/offers/:requestId/cancel", h.CancelEngagement)
			csr.GET("/:csrId/feedback", h.GetMyFeedback)
		}

		// View/shortlist counters are bumped by CSRs browsing requests.
		counters := api.Group("/pin")
		counters.Use(middleware.AuthMiddleware(tokens))
		counters.Use(middleware.RequireRole(models.RoleCSR, models.RolePIN))
		{
			counters.POST("/requests/:id/increment-view", h.IncrementView)
			counters.POST("/requests/:id/increment-shortlist", h.IncrementShortlist)
		}

		// --- Platform Manager Routes ---
		pm := api.Group("/pm")
		pm.Use(middleware.AuthMiddleware(tokens))
		pm.Use(middleware.RequireRole(models.RolePlatformManager))
		{
			pm.GET("/service-types", h.GetServiceTypes)
			pm.POST("/service-types", h.CreateServiceType)
			pm.PUT("/service-types/:id", h.UpdateServiceType)
			pm.DELETE("/service-types/:id", h.DeleteServiceType)
			pm.POST("/service-types/:id/restore", h.RestoreServiceType)
			pm.POST("/service-types/:fromId/reassign", h.ReassignServiceType)

			pm.GET("/reports/quick", h.QuickReport)
			pm.GET("/reports/custom", h.CustomReport)
			pm.GET("/reports/custom.csv", h.CustomReportCSV)
			pm.GET("/reports/custom-data.csv", h.CustomReportDataCSV)

			pm.POST("/announcements/send", h.SendAnnouncement)
			pm.GET("/announcements/latest", h.GetLatestAnnouncement)
		}

		// --- User Admin Routes ---
		admin := api.Group("/userAdmin")
		admin.Use(middleware.AuthMiddleware(tokens))
		admin.Use(middleware.RequireRole(models.RoleUserAdmin))
		{
			admin.GET("/accounts", h.SearchAccounts)
			admin.POST("/accounts", h.CreateAccount)
			admin.PUT("/accounts/:id", h.UpdateAccount)
			admin.PATCH("/accounts/:id/suspend", h.SuspendAccount)
			admin.DELETE("/accounts/:id", h.DeleteAccount)

			admin.GET("/roles", h.GetRoles)
			admin.POST("/roles", h.CreateRole)
			admin.PATCH("/roles/:id/suspend", h.SuspendRole)
			admin.DELETE("/roles/:id", h.DeleteRole)

			admin.GET("/password-reset-requests", h.GetResetRequests)
			admin.POST("/password-reset-approve", h.ApproveResetRequest)
			admin.POST("/password-reset-reject", h.RejectResetRequest)
			admin.POST("/password-reset-clear", h.ClearResetRequests)

			admin.GET("/audit-log", h.GetAuditLog)
			admin.DELETE("/audit-log", h.ClearAuditLog)
			admin.GET("/audit-log/export", h.ExportAuditLog)
		}
	}

	return router
}
