package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cleanorder/internal/server/http/handlers"
	"github.com/polkiloo/cleanorder/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ClientFacade, metrics http.Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	authHandler := handlers.NewAuthHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	promotionHandler := handlers.NewPromotionHandler(facade)
	draftHandler := handlers.NewDraftHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	settingsHandler := handlers.NewSettingsHandler(facade)

	engine.GET("/metrics", gin.WrapH(metrics))

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)

	api.GET("/promotions", promotionHandler.List)
	api.GET("/settings", settingsHandler.Get)
	api.PUT("/settings", settingsHandler.Update)

	drafts := api.Group("/drafts")
	drafts.POST("", draftHandler.Create)
	drafts.GET("/:id", draftHandler.Get)
	drafts.DELETE("/:id", draftHandler.Discard)
	drafts.PUT("/:id/services/:serviceID", draftHandler.ToggleService)
	drafts.PUT("/:id/address", draftHandler.SetAddress)
	drafts.PUT("/:id/schedule", draftHandler.SetSchedule)
	drafts.POST("/:id/images", draftHandler.AddImage)
	drafts.DELETE("/:id/images", draftHandler.RemoveImage)
	drafts.PUT("/:id/promo", draftHandler.SetPromo)
	drafts.DELETE("/:id/promo", draftHandler.ClearPromo)
	drafts.POST("/:id/submit", middleware.SessionRequired(facade), draftHandler.Submit)

	signedIn := api.Group("")
	signedIn.Use(middleware.SessionRequired(facade))
	signedIn.GET("/user/me", profileHandler.Get)
	signedIn.PUT("/user/me", profileHandler.Update)
	signedIn.GET("/orders", orderHandler.List)
	signedIn.GET("/orders/search", orderHandler.Search)
	signedIn.GET("/orders/search/history", orderHandler.History)
	signedIn.DELETE("/orders/search/history", orderHandler.ClearHistory)
	signedIn.GET("/orders/:id", orderHandler.Details)

	return engine
}
