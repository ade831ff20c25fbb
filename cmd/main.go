package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"proxboard/config"
	_ "proxboard/docs" // swag generated docs, regenerate with swag init
	"proxboard/internal/auth"
	"proxboard/internal/cluster"
	"proxboard/internal/controller"
	"proxboard/internal/daemon"
	"proxboard/internal/lbconfig"
	"proxboard/internal/logsource"
	"proxboard/internal/metrics"
	"proxboard/internal/middleware"
	"proxboard/internal/parser"
	"proxboard/internal/scheduler"
	"proxboard/internal/service"
	"proxboard/internal/stream"
)

// @title           ProxBoard API
// @version         1.0
// @description     Web dashboard backend for the ProxLB Proxmox load balancer. Reconstructs balancer activity from its log stream and exposes cluster state, configuration editing, and daemon control.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support Team
// @contact.url    http://www.example.com/support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @tag.name         logs
// @tag.description  Classified balancer logs, migrations, and live streaming

// @tag.name         status
// @tag.description  Combined service status

// @tag.name         balancing
// @tag.description  Manual balancing runs and placement queries

// @tag.name         service
// @tag.description  Balancer daemon lifecycle

// @tag.name         cluster
// @tag.description  Read-only cluster state

// @tag.name         ha
// @tag.description  Proxmox HA manager views

// @tag.name         config
// @tag.description  Balancer configuration editing

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Static API key guarding mutating endpoints. Also accepted as an Authorization bearer token.

func main() {
	app := fx.New(
		// Core Dependencies
		fx.Provide(
			NewConfig,
		),
		// Infrastructure Dependencies
		fx.Provide(
			NewGinEngine,
			metrics.New,
			parser.NewCascadeClassifier,
			NewLogSource,
			NewConfigStore,
			NewClusterClient,
			NewDaemonController,
			NewAuthenticator,
			service.NewLogEventService,
			stream.NewAdapter,
			controller.NewLogController,
			NewStreamController,
			controller.NewStatusController,
			controller.NewClusterController,
			controller.NewConfigController,
		),
		fx.Invoke(
			RegisterAPIRoutes,
			RegisterScheduler,
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second) // Timeout for startup
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}
	<-app.Done()

	// Initiate shutdown
	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second) // Timeout for graceful shutdown
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
	}
	log.Info().Msg("Shutdown complete. Exiting.")
}

func NewConfig() (*config.Config, error) {
	return config.NewConfig()
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Add your frontend URLs
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authenticator auth.Authenticator,
	logController *controller.LogController,
	streamController *controller.StreamController,
	statusController *controller.StatusController,
	clusterController *controller.ClusterController,
	configController *controller.ConfigController,
) {
	guard := middleware.Auth(authenticator)

	if logController != nil {
		controller.RegisterLogRoutes(router, logController)
	} else {
		log.Warn().Msg("LogController not provided, skipping log API routes.")
	}

	if streamController != nil {
		controller.RegisterStreamRoutes(router, streamController)
	} else {
		log.Warn().Msg("StreamController not provided, skipping WebSocket route.")
	}

	if statusController != nil {
		controller.RegisterStatusRoutes(router, statusController, guard)
	} else {
		log.Warn().Msg("StatusController not provided, skipping status API routes.")
	}

	if clusterController != nil {
		controller.RegisterClusterRoutes(router, clusterController)
	} else {
		log.Warn().Msg("ClusterController not provided, skipping cluster API routes.")
	}

	if configController != nil {
		controller.RegisterConfigRoutes(router, configController, guard)
	} else {
		log.Warn().Msg("ConfigController not provided, skipping config API routes.")
	}

	router.GET("/api/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "service": "proxboard"})
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Starting HTTP server on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

// --- Factory Functions ---

func NewLogSource(cfg *config.Config) logsource.Source {
	switch cfg.LogSource.Type {
	case "file":
		if cfg.LogSource.Path == "" {
			log.Warn().Msg("LOG_SOURCE_TYPE is file but LOG_SOURCE_PATH is empty, falling back to docker logs")
			return logsource.NewDockerSource(cfg.Daemon.Container)
		}
		return logsource.NewFileSource(cfg.LogSource.Path)
	default:
		return logsource.NewDockerSource(cfg.Daemon.Container)
	}
}

func NewConfigStore(cfg *config.Config) lbconfig.Store {
	return lbconfig.NewStore(cfg.Daemon.ConfigPath)
}

// NewClusterClient returns nil until a balancer configuration with API
// credentials exists; cluster endpoints answer 503 in the meantime.
func NewClusterClient(store lbconfig.Store) cluster.Client {
	if !store.Loaded() {
		log.Warn().Str("path", store.Path()).Msg("Balancer configuration not found, cluster API disabled")
		return nil
	}
	settings := store.APISettings()
	if len(settings.Hosts) == 0 {
		log.Warn().Msg("Balancer configuration lists no API hosts, cluster API disabled")
		return nil
	}
	return cluster.NewClient(settings.Hosts, settings.User, settings.Password, settings.VerifySSL, settings.Timeout)
}

func NewDaemonController(cfg *config.Config) daemon.Controller {
	return daemon.NewController(nil, cfg.Daemon.Container, cfg.Daemon.Image, cfg.Daemon.ConfigPath)
}

func NewAuthenticator(cfg *config.Config) auth.Authenticator {
	if cfg.APIKey == "" {
		log.Warn().Msg("API_KEY not set, mutating endpoints are unauthenticated")
	}
	return auth.NewStaticKey(cfg.APIKey)
}

func NewStreamController(adapter stream.Adapter, cfg *config.Config) *controller.StreamController {
	return controller.NewStreamController(adapter, cfg.Stream.BackfillLines)
}

// --- Invoker Functions ---

func RegisterScheduler(lc fx.Lifecycle, cfg *config.Config, balancer daemon.Controller, m *metrics.Metrics) {
	scheduler.NewScheduler(lc, cfg, balancer, m)
}
