package bootstrap

import (
	"context"
	"log"

	"extensions-web/internal/config"
	"extensions-web/internal/controller"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/monitor"
	"extensions-web/internal/pkg/render"
	"extensions-web/internal/repository/contract"
	"extensions-web/internal/repository/implementation"
	"extensions-web/internal/repository/memory"
	"extensions-web/internal/service"
	"extensions-web/pkg/extensionsapi"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	StartController        controller.IStartController
	AuthController         controller.IAuthController
	CompanyController      controller.ICompanyController
	ReasonController       controller.IReasonController
	UploadController       controller.IUploadController
	ConfirmationController controller.IConfirmationController
	NavigationController   controller.INavigationController

	// Shared infrastructure the server wires as middleware
	SessionService service.ISessionService
	RequestMonitor monitor.IRequestCountMonitor
	Renderer       render.IRenderer
	Logger         logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	renderer, err := render.NewHTMLRenderer(cfg.App.TemplateDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load templates from %s: %v", cfg.App.TemplateDir, err)
	}

	// 2. Session store
	var sessionRepo contract.ISessionRepository
	if cfg.Session.Store == "memory" {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	} else {
		opt, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.Session.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = implementation.NewRedisSessionRepository(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	}

	// 3. Downstream API
	apiClient := extensionsapi.NewHTTPClient(cfg.Api.BaseURL, cfg.Api.Timeout)

	// 4. Services
	sessionService := service.NewSessionService(sessionRepo, cfg.Session, sysLogger)
	wizardService := service.NewWizardService(sessionService, sysLogger)
	uploadService := service.NewUploadService(wizardService, apiClient, cfg.Upload.MaxFileSizeBytes, sysLogger)

	requestMonitor := monitor.NewRequestCountMonitor(cfg.Admission.MaxRequestsPerDay)
	submissionService := service.NewSubmissionService(sessionService, wizardService, apiClient, requestMonitor, sysLogger)

	// 5. Controllers
	return &Container{
		StartController:        controller.NewStartController(renderer),
		AuthController:         controller.NewAuthController(sessionService, sysLogger),
		CompanyController:      controller.NewCompanyController(wizardService, apiClient, renderer, sysLogger),
		ReasonController:       controller.NewReasonController(wizardService, apiClient, renderer, sysLogger),
		UploadController:       controller.NewUploadController(wizardService, uploadService, apiClient, renderer, sysLogger),
		ConfirmationController: controller.NewConfirmationController(wizardService, submissionService, apiClient, renderer, sysLogger),
		NavigationController:   controller.NewNavigationController(sessionService, sysLogger),

		SessionService: sessionService,
		RequestMonitor: requestMonitor,
		Renderer:       renderer,
		Logger:         sysLogger,
	}
}
