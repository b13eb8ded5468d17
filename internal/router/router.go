package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanatech/marketing-api/internal/config"
	"github.com/sanatech/marketing-api/internal/handler"
	"github.com/sanatech/marketing-api/internal/middleware"
	"github.com/sanatech/marketing-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ContactHandler      *handler.ContactHandler
	AdminContactHandler *handler.AdminContactHandler
	AdminHandler        *handler.AdminHandler
	ContentHandler      *handler.ContentHandler
	UploadHandler       *handler.UploadHandler
	SeedHandler         *handler.SeedHandler
	AdminMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	protect := deps.AdminMiddleware
	if protect == nil {
		protect = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ContactHandler != nil {
		contact := api.Group("/contact")
		limit := middleware.RateLimitByIP(
			"contact",
			cfg.ContactRateMax,
			cfg.ContactRateWindow,
			"Too many contact form submissions, please try again later.",
		)
		deps.ContactHandler.Register(contact, limit)
		if deps.AdminContactHandler != nil {
			deps.AdminContactHandler.Register(contact, protect)
		}
	}

	if deps.AdminHandler != nil {
		admin := api.Group("/admin")
		deps.AdminHandler.Register(admin, protect)
	}

	if deps.ContentHandler != nil {
		content := api.Group("/content")
		deps.ContentHandler.Register(content, protect)
	}

	if deps.UploadHandler != nil {
		upload := api.Group("/upload")
		deps.UploadHandler.Register(upload, protect)
	}

	if deps.SeedHandler != nil {
		seed := api.Group("/seed")
		deps.SeedHandler.Register(seed)
	}
}
