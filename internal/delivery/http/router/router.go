// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"trailhub/internal/delivery/http/middleware"
	"trailhub/internal/delivery/http/router/handler"
	"trailhub/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler the router registers, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	VendorHandler  *handler.VendorHandler
	AdminHandler   *handler.AdminHandler
	CatalogHandler *handler.CatalogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	vendorHandler  *handler.VendorHandler
	adminHandler   *handler.AdminHandler
	catalogHandler *handler.CatalogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		vendorHandler:  params.VendorHandler,
		adminHandler:   params.AdminHandler,
		catalogHandler: params.CatalogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public catalog
	e.GET("/events", r.catalogHandler.BrowseEvents)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/verify-otp", r.authHandler.VerifyOTP)
		authGroup.POST("/refresh-token", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)

		// Any authenticated account, regardless of role.
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authorize())
		authGroup.PUT("/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authorize())
		authGroup.POST("/reset-password", r.authHandler.ResetPassword, r.authMiddleware.Authorize())
		authGroup.PATCH("/update-profile", r.authHandler.UpdateProfile, r.authMiddleware.Authorize())
	}

	// Vendor routes, gated on the VENDOR role
	vendorGroup := e.Group("/vendor")
	vendorGroup.Use(r.authMiddleware.Authorize(entity.RoleVendor))
	{
		vendorGroup.POST("/events", r.vendorHandler.CreateEvent)
		vendorGroup.GET("/events", r.vendorHandler.ListEvents)
		vendorGroup.POST("/gear", r.vendorHandler.CreateGear)
	}

	// Admin routes, reserved for the super admin
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authorize(entity.RoleSuperAdmin))
	{
		adminGroup.GET("/vendors", r.adminHandler.ListVendors)
		adminGroup.PATCH("/vendors/:id/status", r.adminHandler.SetVendorStatus)
		adminGroup.GET("/events/:id", r.adminHandler.GetEvent)
		adminGroup.PATCH("/events/:id/approval", r.adminHandler.SetEventApproval)
		adminGroup.DELETE("/events/:id", r.adminHandler.DeleteEvent)
	}
}
