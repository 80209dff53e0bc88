// Package router wires the middleware chain and the versioned route table.
package router

import (
	"github.com/foodcrm/backend/internal/infrastructure/auth"
	"github.com/foodcrm/backend/internal/infrastructure/logger"
	"github.com/foodcrm/backend/internal/interfaces/http/handler"
	"github.com/foodcrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config carries everything route registration needs
type Config struct {
	JWTService     *auth.JWTService
	Logger         *zap.Logger
	CORS           middleware.CORSConfig
	TracingEnabled bool
	ServiceName    string
}

// Handlers groups the resource handlers mounted by Setup
type Handlers struct {
	System         *handler.SystemHandler
	Auth           *handler.AuthHandler
	Companies      *handler.CompanyHandler
	Contacts       *handler.ContactHandler
	Deals          *handler.DealHandler
	Activities     *handler.ActivityHandler
	Items          *handler.ItemHandler
	PriceLists     *handler.PriceListHandler
	Quotes         *handler.QuoteHandler
	PurchaseOrders *handler.PurchaseOrderHandler
	Emails         *handler.EmailHandler
}

// Setup attaches the middleware chain and registers all routes under
// /api/v1. Health and the auth endpoints are reachable without a token;
// everything else requires a valid JWT and a role grant for the resource.
func Setup(engine *gin.Engine, cfg Config, h Handlers) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.TracingEnabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	api.GET("/health", h.System.Health)

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Routes registered from here on require authentication. The JWT
	// middleware skip list covers the public paths above as well, so
	// ordering is belt and braces.
	jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtCfg.Logger = log
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
	if cfg.TracingEnabled {
		api.Use(middleware.TracingAttributeInjector())
	}

	api.GET("/auth/me", h.Auth.Me)

	companies := api.Group("/companies", middleware.RequireResource("companies"))
	{
		companies.POST("", h.Companies.Create)
		companies.GET("", h.Companies.List)
		companies.GET("/:id", h.Companies.GetByID)
		companies.PUT("/:id", h.Companies.Update)
		companies.DELETE("/:id", h.Companies.Delete)
	}

	contacts := api.Group("/contacts", middleware.RequireResource("contacts"))
	{
		contacts.POST("", h.Contacts.Create)
		contacts.GET("", h.Contacts.List)
		contacts.GET("/:id", h.Contacts.GetByID)
		contacts.PUT("/:id", h.Contacts.Update)
		contacts.DELETE("/:id", h.Contacts.Delete)
	}

	deals := api.Group("/deals", middleware.RequireResource("deals"))
	{
		deals.POST("", h.Deals.Create)
		deals.GET("", h.Deals.List)
		deals.GET("/:id", h.Deals.GetByID)
		deals.PUT("/:id", h.Deals.Update)
		deals.DELETE("/:id", h.Deals.Delete)
	}
	api.PATCH("/deals/:id/stage", middleware.RequireResource("deals"), h.Deals.ChangeStage)

	activities := api.Group("/activities", middleware.RequireResource("activities"))
	{
		activities.POST("", h.Activities.Create)
		activities.GET("", h.Activities.List)
		activities.GET("/:id", h.Activities.GetByID)
		activities.PUT("/:id", h.Activities.Update)
		activities.DELETE("/:id", h.Activities.Delete)
	}
	api.PATCH("/activities/:id/complete", middleware.RequireResource("activities"), h.Activities.Complete)

	items := api.Group("/items", middleware.RequireResource("items"))
	{
		items.POST("", h.Items.Create)
		items.GET("", h.Items.List)
		items.GET("/:id", h.Items.GetByID)
		items.PUT("/:id", h.Items.Update)
		items.DELETE("/:id", h.Items.Delete)
	}

	priceLists := api.Group("/pricelists", middleware.RequireResource("pricelists"))
	{
		priceLists.POST("", h.PriceLists.Create)
		priceLists.GET("", h.PriceLists.List)
		priceLists.GET("/:id", h.PriceLists.GetByID)
		priceLists.PUT("/:id", h.PriceLists.Update)
		priceLists.DELETE("/:id", h.PriceLists.Delete)
		priceLists.GET("/:id/lines", h.PriceLists.ListLines)
		priceLists.POST("/:id/lines", h.PriceLists.AddLine)
		priceLists.DELETE("/:id/lines/:lineID", h.PriceLists.RemoveLine)
	}

	quotes := api.Group("/quotes", middleware.RequireResource("quotes"))
	{
		quotes.POST("", h.Quotes.Create)
		quotes.GET("", h.Quotes.List)
		quotes.GET("/:id", h.Quotes.GetByID)
		quotes.PUT("/:id", h.Quotes.Update)
		quotes.DELETE("/:id", h.Quotes.Delete)
		quotes.GET("/:id/pdf", h.Quotes.ExportPDF)
	}
	api.PATCH("/quotes/:id/status", middleware.RequireResource("quotes"), h.Quotes.ChangeStatus)

	purchaseOrders := api.Group("/purchase-orders", middleware.RequireResource("po"))
	{
		purchaseOrders.POST("", h.PurchaseOrders.Create)
		purchaseOrders.GET("", h.PurchaseOrders.List)
		purchaseOrders.GET("/:id", h.PurchaseOrders.GetByID)
		purchaseOrders.PUT("/:id", h.PurchaseOrders.Update)
		purchaseOrders.DELETE("/:id", h.PurchaseOrders.Delete)
		purchaseOrders.GET("/:id/pdf", h.PurchaseOrders.ExportPDF)
	}
	api.PATCH("/purchase-orders/:id/status", middleware.RequireResource("po"), h.PurchaseOrders.ChangeStatus)

	emails := api.Group("/emails")
	{
		emails.POST("/send", middleware.RequireAction("emails", "send"), h.Emails.Send)
		emails.GET("", middleware.RequireResource("emails"), h.Emails.List)
		emails.GET("/:id", middleware.RequireResource("emails"), h.Emails.GetByID)
	}
}
