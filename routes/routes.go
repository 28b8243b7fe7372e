package routes

import (
	"net/http"

	"backend/config"
	"backend/controllers"
	"backend/middlewares"
	"backend/models"
	"backend/services"
	"backend/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every surface onto a gin engine. All dependencies
// are built here and injected explicitly so tests can stand up the same
// router over a scratch store.
func SetupRouter(cfg *config.Config, st store.Store) *gin.Engine {
	identity := services.NewIdentityService(st)
	githubSvc := services.NewGitHubService(cfg)
	googleSvc := services.NewGoogleService(cfg)
	googleFit := services.NewGoogleFitService()
	zepp := services.NewZeppService(cfg)

	authCtl := controllers.NewAuthController(cfg, identity, githubSvc, googleSvc)
	collectionSvc := services.NewCollectionService(st)
	healthCtl := controllers.NewHealthDataController(services.NewHealthDataService(st))
	syncCtl := controllers.NewSyncController(identity, googleFit, zepp, services.NewSyncService(st))
	adminCtl := controllers.NewAdminController(services.NewAdminService(st))
	webhookCtl := controllers.NewWebhookController(cfg.WebhookSecret, services.NewWebhookService(st))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "x-admin-token"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	r.GET("/auth/:provider", authCtl.Authorize)
	r.GET("/auth/:provider/callback", authCtl.Callback)
	r.POST("/logout", authCtl.Logout)
	r.GET("/api/auth/providers", authCtl.GetProviders)
	r.GET("/api/user", authCtl.GetCurrentUser)

	// Webhook ingestion (signature-gated, not session-gated)
	r.POST("/webhook", webhookCtl.Receive)

	// Protected API routes
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(cfg.SessionSecret))
	{
		for _, name := range models.CRUDCollections {
			ctl := controllers.NewCollectionController(name, collectionSvc)
			api.GET("/"+name, ctl.List)
			api.POST("/"+name, ctl.Create)
			api.DELETE("/"+name+"/:id", ctl.Delete)
		}

		api.GET("/health-data", healthCtl.List)
		api.POST("/health-data", healthCtl.Create)
		api.GET("/health-data/summary", healthCtl.Summary)

		api.GET("/health/providers", syncCtl.GetProviders)
		api.POST("/sync/google-fit", syncCtl.SyncGoogleFit)
		api.POST("/sync/zepp", syncCtl.SyncZepp)
	}

	// Admin surface, token-gated
	admin := r.Group("/api/admin")
	admin.Use(middlewares.AdminMiddleware(cfg.AdminToken))
	{
		admin.GET("/stats", adminCtl.GetStats)
		admin.GET("/entries", adminCtl.GetEntries)
	}

	return r
}
