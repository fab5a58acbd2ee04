package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stylemart/shopbot-backend/internal/handlers"
)

// Handlers bundles everything SetupRoutes wires into the app.
type Handlers struct {
	Health    *handlers.HealthHandler
	Chat      *handlers.ChatHandler
	Session   *handlers.SessionHandler
	Cart      *handlers.CartHandler
	Product   *handlers.ProductHandler
	Customer  *handlers.CustomerHandler
	Analytics *handlers.AnalyticsHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to StyleMart Shopbot Backend!",
			"version": h.Health.Version,
			"endpoints": fiber.Map{
				"health":       "/health",
				"chat":         "/api/chat",
				"smart_chat":   "/api/smart-chat",
				"channel_chat": "/api/channel-chat",
				"products":     "/api/products",
				"analytics":    "/api/analytics/metrics",
			},
		})
	})

	app.Get("/health", h.Health.Check)

	api := app.Group("/api")

	// Conversation
	api.Post("/chat", h.Chat.Chat)
	api.Post("/smart-chat", h.Chat.SmartChat)
	api.Post("/channel-chat", h.Chat.ChannelChat)

	// Sessions
	sessions := api.Group("/session")
	sessions.Post("/", h.Session.CreateSession)
	sessions.Get("/:id", h.Session.GetSession)
	sessions.Post("/:id/switch-channel", h.Session.SwitchChannel)
	sessions.Post("/:id/end", h.Session.EndSession)

	// Cart
	cart := api.Group("/cart")
	cart.Post("/add", h.Cart.AddItem)
	cart.Post("/remove", h.Cart.RemoveItem)
	cart.Post("/update", h.Cart.UpdateQuantity)
	cart.Get("/:sessionId", h.Cart.GetCart)
	cart.Delete("/:sessionId", h.Cart.ClearCart)

	// Catalog and inventory
	api.Get("/products", h.Product.ListProducts)
	api.Get("/products/:id", h.Product.GetProduct)
	api.Post("/recommendations", h.Product.Recommendations)
	api.Post("/check-inventory", h.Product.CheckInventory)
	api.Post("/reserve-items", h.Product.ReserveItems)

	// Customers and loyalty
	api.Get("/customers", h.Customer.ListCustomers)
	api.Get("/customers/:id", h.Customer.GetCustomer)
	api.Get("/loyalty/:id", h.Customer.LoyaltyStatus)
	api.Get("/loyalty/:id/offers", h.Customer.LoyaltyOffers)
	api.Post("/checkout", h.Customer.Checkout)

	// Analytics
	analytics := api.Group("/analytics")
	analytics.Get("/metrics", h.Analytics.Metrics)
	analytics.Post("/roi", h.Analytics.ROI)
	analytics.Post("/recovery", h.Analytics.RecoveryOptions)
}
