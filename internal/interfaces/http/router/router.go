// Package router assembles the gin engine: middleware chain, the public
// login route and the role-scoped Admin and Waiter route trees.
package router

import (
	"net/http"
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/infrastructure/auth"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/config"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/handler"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles the route handlers the router wires up
type Handlers struct {
	Auth       *handler.AuthHandler
	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Orders     *handler.OrderHandler
	Users      *handler.UserHandler
	Roles      *handler.RoleHandler
	Waiter     *handler.WaiterHandler
}

// New builds the configured gin engine
func New(cfg *config.Config, jwtService *auth.JWTService, h Handlers, logger *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.HTTP),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded images are served directly when the public base URL is a
	// local path rather than a CDN origin.
	if strings.HasPrefix(cfg.Images.PublicBaseURL, "/") {
		engine.Static(cfg.Images.PublicBaseURL, cfg.Images.BasePath)
	}

	api := engine.Group("/api")
	api.POST("/Login", h.Auth.Login)

	registerAdminRoutes(api.Group("/Admin",
		middleware.JWTAuth(jwtService),
		middleware.RequireRoles("Admin")), h)

	registerWaiterRoutes(api.Group("/Waiter",
		middleware.JWTAuth(jwtService),
		middleware.RequireRoles("Admin", "Waiter")), h)

	return engine
}

// registerAdminRoutes mounts the full back-office surface
func registerAdminRoutes(rg *gin.RouterGroup, h Handlers) {
	categories := rg.Group("/Categories")
	categories.GET("", h.Categories.List)
	categories.GET("/Count", h.Categories.Count)
	categories.GET("/:id", h.Categories.GetByID)
	categories.POST("", h.Categories.Create)
	categories.PUT("/:id", h.Categories.Update)
	categories.DELETE("/:id", h.Categories.Delete)
	categories.POST("/:id/Restore", h.Categories.Restore)

	products := rg.Group("/Products")
	products.GET("", h.Products.List)
	products.GET("/Count", h.Products.Count)
	products.GET("/:id", h.Products.GetByID)
	products.POST("", h.Products.Create)
	products.PUT("/:id", h.Products.Update)
	products.DELETE("/:id", h.Products.Delete)
	products.POST("/:id/Restore", h.Products.Restore)
	products.GET("/:id/Image", h.Products.GetImage)
	products.POST("/:id/Image", h.Products.AddImage)
	products.PUT("/:id/Image", h.Products.UpdateImage)
	products.DELETE("/:id/Image", h.Products.DeleteImage)

	orders := rg.Group("/Orders")
	orders.GET("", h.Orders.List)
	orders.GET("/Count", h.Orders.Count)
	orders.GET("/:id", h.Orders.GetByID)
	orders.POST("", h.Orders.Create)
	orders.PUT("/:id", h.Orders.Update)
	orders.DELETE("/:id", h.Orders.Delete)
	orders.DELETE("", h.Orders.DeleteRange)

	users := rg.Group("/Users")
	users.GET("", h.Users.List)
	users.GET("/Count", h.Users.Count)
	users.GET("/:id", h.Users.GetByID)
	users.POST("", h.Users.Create)
	users.PUT("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Delete)
	users.POST("/:id/Restore", h.Users.Restore)
	users.POST("/ChangePassword", h.Users.ChangePassword)
	users.POST("/:id/ResetPassword", h.Users.ResetPassword)
	users.POST("/:id/Lock", h.Users.Lock)
	users.POST("/:id/Unlock", h.Users.Unlock)
	users.GET("/:id/Roles", h.Users.RolesOfUser)
	users.POST("/:id/Roles/:roleId", h.Users.AddToRole)
	users.DELETE("/:id/Roles/:roleId", h.Users.RemoveFromRole)

	roles := rg.Group("/Roles")
	roles.GET("", h.Roles.List)
	roles.GET("/Count", h.Roles.Count)
	roles.GET("/:id", h.Roles.GetByID)
	roles.GET("/ByName/:name", h.Roles.GetByName)
	roles.POST("", h.Roles.Create)
	roles.PUT("/:id", h.Roles.Update)
	roles.DELETE("/:id", h.Roles.Delete)
	roles.POST("/:id/Restore", h.Roles.Restore)
	roles.GET("/:id/Users", h.Users.UsersInRole)
}

// registerWaiterRoutes mounts the floor-staff surface: browse the catalog
// and work orders, nothing administrative. Responses use the trimmed view
// shapes, the full models stay behind the admin tree.
func registerWaiterRoutes(rg *gin.RouterGroup, h Handlers) {
	categories := rg.Group("/Categories")
	categories.GET("", h.Waiter.ListCategories)
	categories.GET("/Count", h.Waiter.CountCategories)
	categories.GET("/:id", h.Waiter.GetCategory)

	products := rg.Group("/Products")
	products.GET("", h.Waiter.ListProducts)
	products.GET("/Count", h.Waiter.CountProducts)
	products.GET("/:id", h.Waiter.GetProduct)
	products.GET("/:id/Image", h.Waiter.GetProductImage)

	orders := rg.Group("/Orders")
	orders.GET("", h.Waiter.ListOrders)
	orders.GET("/Count", h.Waiter.CountOrders)
	orders.GET("/:id", h.Waiter.GetOrder)
	orders.POST("", h.Waiter.CreateOrder)
	orders.PUT("/:id", h.Waiter.UpdateOrder)
	orders.DELETE("/:id", h.Waiter.DeleteOrder)

	// self-service password change is available to every authenticated role
	rg.POST("/Users/ChangePassword", h.Users.ChangePassword)
}
