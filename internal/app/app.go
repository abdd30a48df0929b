package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/primeitclub/ict-meetup-api/config"
	"github.com/primeitclub/ict-meetup-api/docs"
	"github.com/primeitclub/ict-meetup-api/internal/controller"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	"github.com/primeitclub/ict-meetup-api/internal/infrastructure/storage/cloudinary"
	"github.com/primeitclub/ict-meetup-api/internal/infrastructure/tracing"
	"github.com/primeitclub/ict-meetup-api/internal/middleware"
	"github.com/primeitclub/ict-meetup-api/internal/repository"
	"github.com/primeitclub/ict-meetup-api/internal/seed"
	"github.com/primeitclub/ict-meetup-api/internal/service"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/primeitclub/ict-meetup-api/pkg/response"
	"github.com/primeitclub/ict-meetup-api/pkg/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo

	metrics        *echo.Echo
	tracerProvider *sdktrace.TracerProvider
	logFile        io.Closer
}

type Repositories struct {
	Versions  repository.VersionRepository
	Users     repository.UserRepository
	AuditLogs repository.AuditLogRepository
}

func CreateRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Versions:  repository.CreateVersionRepository(db),
		Users:     repository.CreateUserRepository(db),
		AuditLogs: repository.CreateAuditLogRepository(db),
	}
}

// NewRouter wires services and controllers onto a new echo instance without
// starting it. A nil tracer disables request spans; request metrics are
// registered on registry.
func NewRouter(conf *config.Config, repos Repositories, imageStorage service.ImageStorage, tracer trace.Tracer, registry prometheus.Registerer) *echo.Echo {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(tracing.ServiceName)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New(dto.VersionRequest{}, dto.VersionPatchRequest{})
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})
	e.Use(middleware.Logger)

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "ict_meetup",
		Registerer: registry,
	}))

	e.Static("/public", conf.UploadDir)

	e.GET("/api-docs", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/api-docs/index.html")
	})
	e.GET("/api-docs.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(docs.SwaggerInfo.ReadDoc()))
	})
	e.GET("/api-docs/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/api-docs.json")))

	g := e.Group("/api", middleware.Actor(conf.JWTSecret))

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	audit := service.CreateAuditRecorder(repos.AuditLogs)

	controller.CreateVersionController(g, service.CreateVersionService(repos.Versions, audit))
	controller.CreateSeedController(g, service.CreateSeedService(repos.Users, audit, seed.StaticUsers(conf.SeedPassword)))
	controller.CreateAuthController(g, service.CreateAuthService(repos.Users, audit, conf.JWTSecret))
	controller.CreateAuditLogController(g, service.CreateAuditLogService(repos.AuditLogs))
	controller.CreateUploadController(g, service.CreateUploadService(conf.UploadDir, imageStorage))

	return e
}

// httpErrorHandler renders framework errors (unknown routes, wrong methods,
// recovered panics) in the same envelope as handler errors.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			err = errs.ErrNotFound
		case http.StatusMethodNotAllowed:
			err = errs.ErrMethodNotAllowed
		case http.StatusRequestEntityTooLarge:
			err = errs.ErrFileSizeExceedingLimit
		default:
			if he.Code < http.StatusInternalServerError {
				err = errs.ErrClient
			}
		}
	}

	if writeErr := response.WriteErrorResponse(c, err, nil); writeErr != nil {
		log.Error().Err(writeErr).Str("component", "HTTPErrorHandler").Msg("")
	}
}

func (app *App) Start() {
	app.logFile = SetupLogger(app.Config)

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
		traceProvider, _ = tracing.InitTracing("")
	}
	app.tracerProvider = traceProvider

	var imageStorage service.ImageStorage
	if app.Config.CloudinaryConfig.Enabled() {
		client, err := cloudinary.CreateCloudinaryClient(app.Config.CloudinaryConfig)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create cloudinary client, images are stored locally only")
		} else {
			imageStorage = client
		}
	} else {
		log.Warn().Msg("Cloudinary credentials missing, images are stored locally only")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := NewRouter(app.Config, CreateRepositories(app.DB), imageStorage, traceProvider.Tracer(tracing.ServiceName), registry)
	app.Server = e

	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: registry}))
	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	log.Info().Str("port", app.Config.ServicePort).Str("environment", app.Config.Environment).Msg("Starting server")

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var stopErrs []error
	if app.Server != nil {
		stopErrs = append(stopErrs, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		stopErrs = append(stopErrs, app.metrics.Shutdown(ctx))
	}
	if app.tracerProvider != nil {
		stopErrs = append(stopErrs, app.tracerProvider.Shutdown(ctx))
	}
	if app.DB != nil {
		stopErrs = append(stopErrs, app.DB.Close())
	}
	if app.logFile != nil {
		stopErrs = append(stopErrs, app.logFile.Close())
	}

	return errors.Join(stopErrs...)
}
