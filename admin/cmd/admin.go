package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/shafe/handcraft/admin/internal/controller"
	adminOtel "github.com/shafe/handcraft/admin/internal/otel"
	"github.com/shafe/handcraft/admin/internal/service"
	"github.com/shafe/handcraft/admin/internal/sweeper"
	"github.com/shafe/handcraft/internal/common"
	"github.com/shafe/handcraft/internal/config"
	commonErrors "github.com/shafe/handcraft/internal/errors"
	"github.com/shafe/handcraft/internal/infra"
	"github.com/shafe/handcraft/internal/log"
	"github.com/shafe/handcraft/internal/middleware"
	"github.com/shafe/handcraft/internal/otel"
	"github.com/shafe/handcraft/internal/repository"
)

func RunAdminService(c context.Context) {
	c, span := adminOtel.Tracer.Start(c, "RunAdminService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, common.AppAdminService).
		Str(log.KeyTag, "main RunAdminService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, common.AppAdminService)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, common.AppAdminService, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(c)
		if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer func() {
		logger.Info().Msg("shutting down database")
		db.Close()
		logger.Info().Msg("shutdown database")
	}()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "initializing admin service").Logger()
	logger.Info().Msg("initializing admin service")
	queries := repository.New(db)
	adminService := service.NewAdminService(queries)
	logger.Info().Msg("initialized admin service")

	logger = logger.With().Str(log.KeyProcess, "initializing sweeper").Logger()
	logger.Info().Msg("initializing sweeper")
	c = logger.WithContext(c)
	subscriptionSweeper, err := sweeper.NewSweeper(c, adminService)
	if err != nil {
		err = fmt.Errorf("failed initializing sweeper with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	subscriptionSweeper.Start()
	defer func() {
		logger.Info().Msg("stopping sweeper")
		subscriptionSweeper.Stop()
		logger.Info().Msg("stopped sweeper")
	}()
	logger.Info().Msg("initialized sweeper")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(common.AppAdminService),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler())
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.Application.SecretKey), middleware.Admin)
	controller.AttachAdminController(api, &adminService)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	go func() {
		logger := logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutting down http server").Logger()
	logger.Info().Msg("received interruption signal shutting down")
	if err := httpServer.Shutdown(context.Background()); err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
