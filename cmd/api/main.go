package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "cost_estimates/docs"
	"cost_estimates/internal/adapter/http/routes"
	"cost_estimates/internal/infrastructure/config"
	"cost_estimates/internal/infrastructure/logger"
	"cost_estimates/internal/infrastructure/tracing"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Cost Estimates API
// @version         1.0
// @description     Prices work-order lines and stores cost estimates in DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.TracingEnabled)
	if err != nil {
		log.Fatal("failed to set up tracing", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	if err := routes.Run(ctx, cfg, log); err != nil {
		log.Error("failed to run the application", "error", err)
		stop()
		os.Exit(1)
	}
}
