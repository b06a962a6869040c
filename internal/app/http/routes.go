package routes

import (
	"github.com/gin-gonic/gin"

	"artmarket-backend/config"
	adminapi "artmarket-backend/internal/api/admin"
	artworksapi "artmarket-backend/internal/api/artworks"
	authapi "artmarket-backend/internal/api/auth"
	checkoutapi "artmarket-backend/internal/api/checkout"
	stripewebhooks "artmarket-backend/internal/api/stripewebhook"
	usersapi "artmarket-backend/internal/api/users"
	"artmarket-backend/internal/app/http/middleware"
	"artmarket-backend/internal/checkout"
	"artmarket-backend/internal/infra/filestore"
	"artmarket-backend/internal/ingest"
	"artmarket-backend/internal/store"
)

// Deps is everything the HTTP layer needs; main wires it exactly once.
type Deps struct {
	Store         store.Store
	Pipeline      *ingest.Pipeline
	Checkout      *checkout.Service
	Delivery      filestore.Backend
	Disk          *filestore.Disk
	WebhookSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	artworksHandler := artworksapi.NewHandler(d.Pipeline, d.Store, d.Delivery, d.Disk)
	checkoutHandler := checkoutapi.NewHandler(d.Checkout)
	webhookHandler := stripewebhooks.NewHandler(d.Checkout, d.WebhookSecret)
	authHandler := authapi.NewHandler(d.Store)
	usersHandler := usersapi.NewHandler(d.Store)
	adminHandler := adminapi.NewHandler(d.Store)

	// Raw body required for signature verification: no sanitizer here.
	r.POST("/api/payments/webhook", webhookHandler.Handle)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/files/:filename", artworksHandler.ServeFile)

	public := r.Group("/api")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/auth/register", authHandler.Register)
	public.POST("/auth/login", authHandler.Login)

	if config.GOOGLE_CLIENT_ID != "" {
		public.GET("/auth/google", authHandler.GoogleStart)
		public.GET("/auth/google/callback", authHandler.GoogleCallback)
	}

	// Gallery and purchases stay open to guests; a valid bearer token
	// attaches ownership, an absent one means anonymous.
	open := r.Group("/api")
	open.Use(middleware.OptionalAuth())
	open.POST("/artworks", artworksHandler.Upload)
	open.GET("/artworks", artworksHandler.List)
	open.GET("/artworks/:id", artworksHandler.Get)
	open.POST("/checkout/:artworkId", checkoutHandler.Create)

	// Authenticated
	auth := r.Group("/api")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersHandler.GetCurrentUser)
	auth.POST("/auth/change-password", authHandler.ChangePassword)

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/users", adminHandler.ListAllUsers)
	admin.GET("/orders", adminHandler.ListAllOrders)
}
