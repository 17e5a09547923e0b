package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fieldservice_quotes/internal/adapter/http/routes"
	"fieldservice_quotes/internal/config"
	"fieldservice_quotes/pkg/logger"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
)

// @title           Field Service Quotes API
// @version         1.0
// @description     Quote composition (header, line items, derived totals) for field service clients.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "quotes-api"})

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "quotes-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	gin.SetMode(cfg.App.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap application", err)
		os.Exit(1)
	}
	defer app.Close(context.Background())

	addr := ":" + strconv.Itoa(cfg.App.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(app.handlers, app.routeOptions),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}()

	logCtx := logg.WithFields(context.Background(), map[string]any{
		"addr":          addr,
		"storage":       cfg.Quotes.Storage,
		"status_policy": cfg.Quotes.StatusPolicy,
	})
	logg.Info(logCtx, "starting api server")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(logCtx, "api server stopped unexpectedly", err)
		app.Close(context.Background())
		os.Exit(1)
	}
	logg.Info(logCtx, "api server stopped")
}
