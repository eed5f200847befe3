package routes

import (
	"context"
	"net/http"
	"time"

	_ "cost_estimates/docs" // generated by swag init
	"cost_estimates/internal/adapter/http/handlers"
	"cost_estimates/internal/adapter/http/middleware"
	"cost_estimates/internal/adapter/persistence/repository"
	"cost_estimates/internal/infrastructure/config"
	"cost_estimates/internal/infrastructure/database"
	"cost_estimates/internal/infrastructure/logger"
	"cost_estimates/internal/infrastructure/tracing"
	"cost_estimates/internal/usecase"
	"cost_estimates/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
)

// NewRouter wires middlewares, swagger and the /v1 routes around the use case.
func NewRouter(uc usecase.IEstimateUseCase, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(otelgin.Middleware(tracing.ServiceName))
	router.Use(middleware.RequestLogger(log))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimateRoutes(v1, handlers.NewEstimateHandler(uc))

	return router
}

// NewRepository picks the estimate store named by the configuration.
func NewRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (interfaces.IEstimateRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("using in-memory estimate store, data is lost on restart")
		return repository.NewEstimateMemoryRepository(), nil
	case config.StoreDriverDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, errors.Wrap(err, "connect dynamodb")
		}
		log.Info("using dynamodb estimate store", "table", cfg.EstimatesTable, "region", cfg.AWSRegion)
		return repository.NewEstimateDynamoRepository(ddb, cfg.EstimatesTable), nil
	default:
		return nil, errors.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Run serves the API until ctx is cancelled, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := NewRepository(ctx, cfg, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(usecase.NewEstimateUseCase(repo, log), log),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down server", "timeout", cfg.ShutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})

	return g.Wait()
}
