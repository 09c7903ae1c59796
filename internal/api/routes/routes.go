// server/internal/api/routes/routes.go
package routes

import (
	"lane-supply-api-server/config"
	"lane-supply-api-server/internal/api/handlers"
	"lane-supply-api-server/internal/api/middleware"
	"lane-supply-api-server/internal/models"
	"lane-supply-api-server/internal/s3"
	"lane-supply-api-server/internal/socket"
	"lane-supply-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires every handler to its route group.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	st *store.Store,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	authHandler := &handlers.AuthHandler{DB: db, Store: st, Cfg: cfg}
	requestHandler := &handlers.RequestHandler{Store: st}
	inventoryHandler := &handlers.InventoryHandler{Store: st}
	expiringHandler := &handlers.ExpiringHandler{Store: st}
	messageHandler := &handlers.MessageHandler{Store: st}
	maintenanceHandler := &handlers.MaintenanceHandler{Store: st, Uploader: s3Uploader}
	reportHandler := &handlers.ReportHandler{Store: st, Cfg: cfg}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Everything below requires a valid token.
		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate())
		{
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/logout", authHandler.Logout)

			// Requests: workers submit and manage their own; warehouse and
			// HR review their department queues.
			requests := protected.Group("/requests")
			{
				workerRoutes := requests.Group("/")
				workerRoutes.Use(middleware.Authorize(models.RoleWorker))
				{
					workerRoutes.POST("/", requestHandler.CreateRequest)
					workerRoutes.GET("/mine", requestHandler.GetMyRequests)
					workerRoutes.PUT("/:id", requestHandler.UpdateMyRequest)
					workerRoutes.DELETE("/:id", requestHandler.DeleteMyRequest)
				}

				reviewerRoutes := requests.Group("/")
				reviewerRoutes.Use(middleware.Authorize(models.RoleWarehouse, models.RoleHR))
				{
					reviewerRoutes.GET("/", requestHandler.GetAllRequests)
					reviewerRoutes.PUT("/:id/review", requestHandler.ReviewRequest)
				}
			}

			// Inventory: warehouse manages, reviewers read.
			inventory := protected.Group("/inventory")
			inventory.Use(middleware.Authorize(models.RoleWarehouse, models.RoleHR))
			{
				inventory.GET("/", inventoryHandler.GetItems)
				inventory.GET("/low-stock", inventoryHandler.GetLowStock)

				manage := inventory.Group("/")
				manage.Use(middleware.Authorize(models.RoleWarehouse))
				{
					manage.POST("/", inventoryHandler.SaveItem)
					manage.DELETE("/:id", inventoryHandler.DeleteItem)
				}
			}

			// Expiring items: workers report, reviewers read, HR gets alerts.
			expiring := protected.Group("/expiring")
			{
				expiring.POST("/", middleware.Authorize(models.RoleWorker), expiringHandler.AddItem)
				expiring.GET("/", middleware.Authorize(models.RoleWarehouse, models.RoleHR), expiringHandler.GetItems)
				expiring.GET("/alerts", middleware.Authorize(models.RoleHR), expiringHandler.GetAlerts)
			}

			// Messaging and the notification feed, any role.
			messages := protected.Group("/messages")
			{
				messages.POST("/", messageHandler.SendMessage)
				messages.GET("/", messageHandler.GetMessages)
				messages.POST("/:id/read", messageHandler.MarkMessageRead)
			}
			notifications := protected.Group("/notifications")
			{
				notifications.GET("/", messageHandler.GetNotifications)
				notifications.POST("/:id/read", messageHandler.MarkNotificationRead)
				notifications.GET("/unread-count", messageHandler.GetUnreadCount)
			}

			// Maintenance: any dashboard triggers the due jobs at session
			// start; snapshots are reviewer-only.
			maintenance := protected.Group("/maintenance")
			{
				maintenance.POST("/run", maintenanceHandler.RunJobs)

				snapshots := maintenance.Group("/")
				snapshots.Use(middleware.Authorize(models.RoleWarehouse, models.RoleHR))
				{
					snapshots.GET("/backups", maintenanceHandler.GetBackups)
					snapshots.POST("/backups/:id/restore", maintenanceHandler.RestoreBackup)
				}
			}

			// Reports, reviewer-only.
			reports := protected.Group("/reports")
			reports.Use(middleware.Authorize(models.RoleWarehouse, models.RoleHR))
			{
				reports.GET("/requests.csv", reportHandler.RequestsCSV)
				reports.GET("/requests.pdf", reportHandler.RequestsPDF)
				reports.GET("/inventory.csv", reportHandler.InventoryCSV)
				reports.GET("/inventory.pdf", reportHandler.InventoryPDF)
				reports.GET("/summary", reportHandler.Summary)
			}
		}
	}

	return router
}
