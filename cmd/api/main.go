// Package main is the entry point for the Tripfolio API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pkordes/tripfolio/internal/assistant"
	"github.com/pkordes/tripfolio/internal/config"
	"github.com/pkordes/tripfolio/internal/handler"
	"github.com/pkordes/tripfolio/internal/middleware"
	"github.com/pkordes/tripfolio/internal/service"
	"github.com/pkordes/tripfolio/internal/store"
	"github.com/pkordes/tripfolio/spec"
)

// maxBodySize caps incoming request bodies. Destination payloads are tiny;
// 1 MiB is generous headroom.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// A local .env file is a convenience for development; real environment
	// variables always win.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog with a JSON handler writes machine-readable output suitable
	// for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Itinerary --------------------------------------------------------
	// The collection lives in memory and is flushed to the flat file after
	// every successful mutation. A corrupt file is reported and the server
	// starts with an empty itinerary, matching the CLI's behaviour.
	itinerary := service.NewItinerary(store.NewFile(cfg.ItineraryFile))
	if err := itinerary.Load(); err != nil {
		slog.Error("failed to load itinerary, starting empty", "file", cfg.ItineraryFile, "error", err)
	} else {
		slog.Info("itinerary loaded", "file", cfg.ItineraryFile, "destinations", itinerary.Len())
	}

	// --- Assistant --------------------------------------------------------
	gen := assistant.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	if !gen.Configured() {
		slog.Info("OPENAI_API_KEY not set, travel assistant disabled")
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → body-size cap.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	server := handler.NewServer(itinerary, gen, spec.OpenAPI)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // suggestions wait on the generation API
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for an OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	// Flush once more on the way out so the file reflects the final state.
	if err := itinerary.Save(); err != nil {
		slog.Error("final save failed", "error", err)
	}
	slog.Info("server stopped")
}
