package server

import (
	"log"

	"extensions-web/internal/bootstrap"
	"extensions-web/internal/config"
	"extensions-web/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// StreamRequestBody lets the upload route consume the multipart body as
	// it arrives instead of waiting for fasthttp to buffer it whole; the
	// body limit leaves headroom over the file ceiling for the envelope.
	app := fiber.New(fiber.Config{
		BodyLimit:         int(cfg.Upload.MaxFileSizeBytes) + 1024*1024,
		StreamRequestBody: true,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Requested-With",
		AllowMethods:     "GET, POST, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Renderer, container.Logger))
	app.Use(serverutils.SessionMiddleware(container.SessionService))
	app.Use(serverutils.HistoryMiddleware(container.SessionService, cfg.App.SignInURL, container.Logger))

	// Routes
	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	// Public pages
	c.StartController.RegisterRoutes(app)
	c.AuthController.RegisterRoutes(app)

	// Wizard pages: signed-in sessions only, shed once the daily ceiling
	// is hit.
	wizard := app.Group("",
		serverutils.AdmissionMiddleware(c.RequestMonitor, c.Logger),
		serverutils.AuthMiddleware(cfg.App.SignInURL),
	)
	c.CompanyController.RegisterRoutes(wizard)
	c.ReasonController.RegisterRoutes(wizard)
	c.UploadController.RegisterRoutes(wizard)
	c.ConfirmationController.RegisterRoutes(wizard)
	c.NavigationController.RegisterRoutes(wizard)
}
