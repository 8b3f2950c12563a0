// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"storemap/internal/delivery/http/middleware"
	"storemap/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AccountHandler *handler.AccountHandler
	StoreHandler   *handler.StoreHandler
	ReviewHandler  *handler.ReviewHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	accountHandler *handler.AccountHandler
	storeHandler   *handler.StoreHandler
	reviewHandler  *handler.ReviewHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		accountHandler: params.AccountHandler,
		storeHandler:   params.StoreHandler,
		reviewHandler:  params.ReviewHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Password recovery, usable while logged out
	e.POST("/account/forgot", r.accountHandler.ForgotPassword)
	e.GET("/account/reset/:token", r.accountHandler.ValidateResetToken)
	e.POST("/account/reset/:token", r.accountHandler.ResetPassword)

	// Public store browsing
	e.GET("/stores", r.storeHandler.ListStores)
	e.GET("/stores/:slug", r.storeHandler.GetStoreBySlug)
	e.GET("/tags", r.storeHandler.StoresByTag)
	e.GET("/tags/:tag", r.storeHandler.StoresByTag)
	e.GET("/top", r.storeHandler.TopStores)

	// Public JSON APIs for the map, search box and review listings
	e.GET("/api/v1/search", r.storeHandler.SearchStores)
	e.GET("/api/stores/near", r.storeHandler.NearbyStores)
	e.GET("/api/stores/:id/reviews", r.reviewHandler.StoreReviews)

	// Account routes that require authentication
	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("", r.userHandler.GetAccount)
		accountGroup.POST("", r.userHandler.UpdateAccount)
		accountGroup.GET("/hearts", r.accountHandler.HeartedStores)
	}

	// Store management routes that require authentication
	storeGroup := e.Group("/api/stores")
	storeGroup.Use(r.authMiddleware.Authenticate)
	{
		storeGroup.POST("", r.storeHandler.CreateStore)
		storeGroup.GET("/:id/edit", r.storeHandler.GetStoreForEdit)
		storeGroup.POST("/:id", r.storeHandler.UpdateStore)
		storeGroup.POST("/:id/heart", r.accountHandler.ToggleHeart)
		storeGroup.POST("/:id/reviews", r.reviewHandler.AddReview)
	}
}
