// Package main is the interactive Tripfolio planner.
// It wires the itinerary service, file store, and assistant client to the
// menu loop on stdin/stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/pkordes/tripfolio/internal/assistant"
	"github.com/pkordes/tripfolio/internal/cli"
	"github.com/pkordes/tripfolio/internal/config"
	"github.com/pkordes/tripfolio/internal/service"
	"github.com/pkordes/tripfolio/internal/store"
)

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "loaded configuration from .env")
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	gen := assistant.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	if !gen.Configured() {
		fmt.Fprintln(os.Stderr, "note: OPENAI_API_KEY not set, travel assistant disabled")
	}

	itinerary := service.NewItinerary(store.NewFile(cfg.ItineraryFile))

	// Ctrl-C cancels any in-flight assistant call; the menu itself exits on
	// EOF or the exit option.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cli.New(itinerary, gen, os.Stdin, os.Stdout).Run(ctx)
}
