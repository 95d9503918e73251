package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/rotaviagem/backend/internal/config"
	"github.com/rotaviagem/backend/internal/handlers"
	"github.com/rotaviagem/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	tripHandler *handlers.TripHandler,
	reportHandler *handlers.ReportHandler,
	invoicingHandler *handlers.InvoicingHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth routes are public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/google", authHandler.GoogleSignIn)
	auth.Post("/verify-token", authHandler.VerifyToken)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Put("/auth/profile-image", middleware.JWTProtected(cfg), authHandler.UpdateProfileImage)

	// Protected domain routes
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Post("/trips", tripHandler.Create)
	protected.Get("/trips", tripHandler.List)
	protected.Get("/trips/:id", tripHandler.Get)
	protected.Put("/trips", tripHandler.Update)
	protected.Delete("/trips/:id", tripHandler.Delete)
	protected.Delete("/trips", tripHandler.DeleteMany)

	protected.Post("/reports/:tripId", reportHandler.Create)
	protected.Get("/reports", reportHandler.List)
	protected.Get("/reports/:id", reportHandler.Get)
	protected.Put("/reports", reportHandler.Update)
	protected.Delete("/reports/:id", reportHandler.Delete)
	protected.Delete("/reports", reportHandler.DeleteMany)

	protected.Get("/invoicing/history", invoicingHandler.History)
}
