package main

//
//  @title           sharecgt API
//  @version         1.0
//  @description     Capital gains calculator for share trades (FIFO lot matching, 50% discount after 365 days).
//  @termsOfService  https://github.com/guttosm/sharecgt
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/sharecgt
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        calculators
//  @tag.description Capital gains calculation from broker trade files
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/sharecgt/config"
	_ "github.com/guttosm/sharecgt/docs" // swagger docs
	"github.com/guttosm/sharecgt/internal/app"
	"github.com/guttosm/sharecgt/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//   - requestTimeout (time.Duration): per-request bound; the write timeout leaves room above it.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string, requestTimeout time.Duration) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestTimeout + 20*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runCalculate executes the calculate mode and returns the process exit code.
func runCalculate(ctx context.Context, dir string, parallel int, out io.Writer) int {
	logger.L().Info().Str("dir", dir).Msg("running calculation")
	if err := app.RunCalculation(ctx, dir, parallel, out); err != nil {
		logger.L().Error().Err(err).Msg("calculation failed")
		return 1
	}
	return 0
}

// main is the entry point of the sharecgt application.
//
// Modes (selected via --mode flag):
//   - api:       Starts the REST API; runs are stored in PostgreSQL.
//   - calculate: Reads every .csv in --dir and prints the run as JSON to stdout.
//
// Flags:
//   - --mode:     Execution mode ("api" or "calculate"). Default: "api".
//   - --dir:      Directory with trade CSV files. Default: "./data/trades".
//   - --parallel: Files parsed concurrently (0 = config PARSE_PARALLEL).
//   - --port:     Port for the API server. Defaults to SERVER_PORT.
func main() {
	ctx := context.Background()

	config.LoadConfig()

	mode := flag.String("mode", "api", "Mode: api or calculate")
	dir := flag.String("dir", "./data/trades", "Directory with trade .csv files (calculate mode)")
	parallel := flag.Int("parallel", 0, "How many files to parse concurrently (0 = PARSE_PARALLEL)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	if *parallel <= 0 {
		*parallel = config.AppConfig.Calculator.ParseParallel
	}

	switch *mode {
	case "calculate":
		// stdout is reserved for the report
		logger.InitWithWriter(os.Stderr)
		os.Exit(runCalculate(ctx, *dir, *parallel, os.Stdout))

	case "api":
		logger.Init()
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port, config.AppConfig.Server.RequestTimeout)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.Init()
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
